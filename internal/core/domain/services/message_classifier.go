package services

import (
	"context"
	"strings"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/pkg/errs"
)

// ClassKind is the category the classifier assigns to a courier message.
type ClassKind string

const (
	// ClassKnownUnknown marks a message already recorded as unclassifiable.
	// Downstream processing must stop without touching any exception.
	ClassKnownUnknown ClassKind = "known_unknown"
	// ClassUnknown marks a message seen for the very first time. The
	// classifier records it in the dictionary for curation and downstream
	// processing stops.
	ClassUnknown ClassKind = "unknown"
	// ClassIgnore marks a message matched against the ignore dictionary.
	ClassIgnore ClassKind = "ignore"
	// ClassProblem marks a message that indicates a delivery problem.
	ClassProblem ClassKind = "problem"
	// ClassNoProblem marks a message that indicates normal progress.
	ClassNoProblem ClassKind = "no_problem"
	// ClassDateOnly marks a message that only announces a rescheduled
	// delivery date without a problem or no-problem match. Downstream
	// processing stops without touching any exception.
	ClassDateOnly ClassKind = "date_only"
)

// Classification is the classifier's verdict on one message. SetsDeliveryDate
// is orthogonal to the kind: a no-problem message can simultaneously carry a
// rescheduled delivery date.
type Classification struct {
	Kind             ClassKind
	SetsDeliveryDate bool
}

// MessageDictionary is the slice of the courier-message dictionary the
// classifier needs. ports.CSMessageRepository satisfies it.
type MessageDictionary interface {
	GetTexts(ctx context.Context, courierID courier.ID, msgType *courier.MessageType) ([]string, error)
	Add(ctx context.Context, courierID courier.ID, msgType courier.MessageType, text string) error
}

// MessageClassifier categorizes courier messages by case-insensitive
// substring containment against the per-courier dictionary.
//
// Categories are checked in fixed priority order:
//  1. Known-unknown: the message matches a text already recorded as
//     unclassifiable. Short-circuits everything else.
//  2. Unknown: the message matches no dictionary entry of any type. The
//     classifier appends it to the dictionary (with any trailing date token
//     stripped) so staff can categorize it, then stops.
//  3. Ignore.
//  4. Problem versus no-problem.
//  5. Date-only: a set-delivery-date match with neither a problem nor a
//     no-problem match carries no status on its own.
//
// An unrecognized phrase is most likely a new automated courier status; it
// must not fall through the problem logic before a human has curated it.
type MessageClassifier struct {
	dictionary MessageDictionary
}

// NewMessageClassifier creates a classifier over the given dictionary.
func NewMessageClassifier(dictionary MessageDictionary) (*MessageClassifier, error) {
	if dictionary == nil {
		return nil, errs.NewValueIsRequiredError("dictionary")
	}
	return &MessageClassifier{dictionary: dictionary}, nil
}

// Classify assigns a category to one courier message. Dictionary read
// failures propagate to the caller; the unknown path appends a new dictionary
// entry as a side effect.
func (c *MessageClassifier) Classify(ctx context.Context, courierID courier.ID, message string) (Classification, error) {
	knownUnknown, err := c.matchesType(ctx, courierID, message, courier.MessageTypeUnknown)
	if err != nil {
		return Classification{}, err
	}
	if knownUnknown {
		return Classification{Kind: ClassKnownUnknown}, nil
	}

	setsDate, err := c.matchesType(ctx, courierID, message, courier.MessageTypeSetDeliveryDate)
	if err != nil {
		return Classification{}, err
	}

	ignore, err := c.matchesType(ctx, courierID, message, courier.MessageTypeIgnore)
	if err != nil {
		return Classification{}, err
	}

	problem, err := c.matchesType(ctx, courierID, message, courier.MessageTypeProblem)
	if err != nil {
		return Classification{}, err
	}

	noProblem, err := c.matchesType(ctx, courierID, message, courier.MessageTypeNoProblem)
	if err != nil {
		return Classification{}, err
	}

	if !setsDate && !ignore && !problem && !noProblem {
		if err := c.recordUnknown(ctx, courierID, message); err != nil {
			return Classification{}, err
		}
		return Classification{Kind: ClassUnknown}, nil
	}

	if ignore {
		return Classification{Kind: ClassIgnore}, nil
	}

	if problem {
		return Classification{Kind: ClassProblem, SetsDeliveryDate: setsDate}, nil
	}

	if noProblem {
		return Classification{Kind: ClassNoProblem, SetsDeliveryDate: setsDate}, nil
	}

	return Classification{Kind: ClassDateOnly, SetsDeliveryDate: true}, nil
}

// matchesType reports whether any dictionary text of the given type is
// contained in the message, ignoring case.
func (c *MessageClassifier) matchesType(ctx context.Context, courierID courier.ID, message string, msgType courier.MessageType) (bool, error) {
	texts, err := c.dictionary.GetTexts(ctx, courierID, &msgType)
	if err != nil {
		return false, err
	}

	lowered := strings.ToLower(message)
	for _, text := range texts {
		if text == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(text)) {
			return true, nil
		}
	}
	return false, nil
}

// recordUnknown appends a first-seen message to the dictionary. The trailing
// date token is stripped so one entry covers every future occurrence of the
// phrase.
func (c *MessageClassifier) recordUnknown(ctx context.Context, courierID courier.ID, message string) error {
	text := courier.StripTrailingDeliveryDate(message)
	if text == "" {
		text = strings.TrimSpace(message)
	}
	return c.dictionary.Add(ctx, courierID, courier.MessageTypeUnknown, text)
}
