package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/services"
)

// fakeDictionary is an in-memory MessageDictionary with recorded writes.
type fakeDictionary struct {
	texts map[courier.MessageType][]string
	added []string
}

func newFakeDictionary() *fakeDictionary {
	return &fakeDictionary{texts: make(map[courier.MessageType][]string)}
}

func (d *fakeDictionary) GetTexts(_ context.Context, _ courier.ID, msgType *courier.MessageType) ([]string, error) {
	if msgType == nil {
		var all []string
		for _, texts := range d.texts {
			all = append(all, texts...)
		}
		return all, nil
	}
	return d.texts[*msgType], nil
}

func (d *fakeDictionary) Add(_ context.Context, _ courier.ID, msgType courier.MessageType, text string) error {
	d.texts[msgType] = append(d.texts[msgType], text)
	d.added = append(d.added, text)
	return nil
}

func newBRTDictionary() *fakeDictionary {
	dict := newFakeDictionary()
	dict.texts[courier.MessageTypeProblem] = []string{"rifiuto", "giacenza"}
	dict.texts[courier.MessageTypeNoProblem] = []string{"in consegna", "consegna prevista"}
	dict.texts[courier.MessageTypeIgnore] = []string{"partita"}
	dict.texts[courier.MessageTypeSetDeliveryDate] = []string{"consegna prevista"}
	dict.texts[courier.MessageTypeUnknown] = []string{"smistamento anomalo"}
	return dict
}

func TestMessageClassifier_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("should classify problem message", func(t *testing.T) {
		classifier, err := services.NewMessageClassifier(newBRTDictionary())
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "RIFIUTO PER COLLO DANNEGGIATO")

		require.NoError(t, err)
		assert.Equal(t, services.ClassProblem, result.Kind)
		assert.False(t, result.SetsDeliveryDate)
	})

	t.Run("should classify no-problem message ignoring case", func(t *testing.T) {
		classifier, err := services.NewMessageClassifier(newBRTDictionary())
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "IN CONSEGNA")

		require.NoError(t, err)
		assert.Equal(t, services.ClassNoProblem, result.Kind)
	})

	t.Run("should tag delivery date orthogonally to no-problem", func(t *testing.T) {
		classifier, err := services.NewMessageClassifier(newBRTDictionary())
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "Consegna prevista 05.11.2024")

		require.NoError(t, err)
		assert.Equal(t, services.ClassNoProblem, result.Kind)
		assert.True(t, result.SetsDeliveryDate)
	})

	t.Run("should short-circuit known unknown before problem check", func(t *testing.T) {
		dict := newBRTDictionary()
		dict.texts[courier.MessageTypeUnknown] = append(dict.texts[courier.MessageTypeUnknown], "rifiuto")
		classifier, err := services.NewMessageClassifier(dict)
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "RIFIUTO PER COLLO DANNEGGIATO")

		require.NoError(t, err)
		assert.Equal(t, services.ClassKnownUnknown, result.Kind)
		assert.Empty(t, dict.added)
	})

	t.Run("should record first-seen message as unknown", func(t *testing.T) {
		dict := newBRTDictionary()
		classifier, err := services.NewMessageClassifier(dict)
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "Dogana in attesa di sdoganamento")

		require.NoError(t, err)
		assert.Equal(t, services.ClassUnknown, result.Kind)
		assert.Equal(t, []string{"Dogana in attesa di sdoganamento"}, dict.added)
	})

	t.Run("should strip trailing date before recording unknown", func(t *testing.T) {
		dict := newBRTDictionary()
		classifier, err := services.NewMessageClassifier(dict)
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "Nuovo stato imprevisto 05.11.2024")

		require.NoError(t, err)
		assert.Equal(t, services.ClassUnknown, result.Kind)
		assert.Equal(t, []string{"Nuovo stato imprevisto"}, dict.added)
	})

	t.Run("should recognize recorded unknown on the next call", func(t *testing.T) {
		dict := newBRTDictionary()
		classifier, err := services.NewMessageClassifier(dict)
		require.NoError(t, err)

		first, err := classifier.Classify(ctx, courier.IDBRT, "Nuovo stato imprevisto 05.11.2024")
		require.NoError(t, err)
		require.Equal(t, services.ClassUnknown, first.Kind)

		second, err := classifier.Classify(ctx, courier.IDBRT, "Nuovo stato imprevisto 07.11.2024")

		require.NoError(t, err)
		assert.Equal(t, services.ClassKnownUnknown, second.Kind)
	})

	t.Run("should classify date-only message without recording it", func(t *testing.T) {
		dict := newFakeDictionary()
		dict.texts[courier.MessageTypeSetDeliveryDate] = []string{"nuova data di consegna"}
		classifier, err := services.NewMessageClassifier(dict)
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "Nuova data di consegna 05.11.2024")

		require.NoError(t, err)
		assert.Equal(t, services.ClassDateOnly, result.Kind)
		assert.True(t, result.SetsDeliveryDate)
		assert.Empty(t, dict.added)
	})

	t.Run("should classify ignore message", func(t *testing.T) {
		classifier, err := services.NewMessageClassifier(newBRTDictionary())
		require.NoError(t, err)

		result, err := classifier.Classify(ctx, courier.IDBRT, "Partita dalla filiale")

		require.NoError(t, err)
		assert.Equal(t, services.ClassIgnore, result.Kind)
	})

	t.Run("should require dictionary", func(t *testing.T) {
		_, err := services.NewMessageClassifier(nil)

		assert.Error(t, err)
	})
}
