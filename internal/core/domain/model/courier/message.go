package courier

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// ErrServiceMessageIsNotConstructed is returned when a ServiceMessage was not
// created via NewServiceMessage.
var ErrServiceMessageIsNotConstructed = errors.New(
	"ServiceMessage must be created via NewServiceMessage constructor",
)

// MessageType classifies a courier status phrase in the per-courier
// dictionary. It is a plain tagged enumeration; label and translation
// concerns live outside the domain.
type MessageType string

// Dictionary entry types.
const (
	// MessageTypeProblem marks phrases that indicate a delivery problem.
	MessageTypeProblem MessageType = "problem"
	// MessageTypeNoProblem marks phrases that indicate normal progress.
	MessageTypeNoProblem MessageType = "no_problem"
	// MessageTypeIgnore marks phrases that must be dropped silently.
	MessageTypeIgnore MessageType = "ignore"
	// MessageTypeSetDeliveryDate marks phrases that carry a rescheduled
	// delivery date. The tag is orthogonal to problem/no-problem.
	MessageTypeSetDeliveryDate MessageType = "set_delivery_date"
	// MessageTypeUnknown marks phrases previously seen but not yet curated
	// into one of the other types.
	MessageTypeUnknown MessageType = "unknown"
)

// getValidMessageTypes returns the set of acceptable MessageType values.
func getValidMessageTypes() map[MessageType]struct{} {
	return map[MessageType]struct{}{
		MessageTypeProblem:         {},
		MessageTypeNoProblem:       {},
		MessageTypeIgnore:          {},
		MessageTypeSetDeliveryDate: {},
		MessageTypeUnknown:         {},
	}
}

// MessageTypeFromString parses a stored dictionary type value.
func MessageTypeFromString(s string) (MessageType, error) {
	mt := MessageType(strings.ToLower(strings.TrimSpace(s)))
	if err := mt.Validate(); err != nil {
		return "", err
	}
	return mt, nil
}

// Validate checks that the MessageType is one of the defined values.
func (t MessageType) Validate() error {
	if _, ok := getValidMessageTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"message type is invalid",
			fmt.Errorf("%q is not a valid message type", string(t)),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (t MessageType) String() string {
	return string(t)
}

// ServiceMessage is a per-courier dictionary entry: a known status phrase and
// its classification type. The dictionary is process-wide reference data,
// read by every classifier call and appended to when a genuinely new phrase
// is observed.
type ServiceMessage struct {
	id        kernel.UUID
	courierID ID
	text      string
	msgType   MessageType
}

// NewServiceMessage creates a dictionary entry with validation.
func NewServiceMessage(id kernel.UUID, courierID ID, text string, msgType MessageType) (*ServiceMessage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errs.NewValueIsRequiredError("text")
	}
	if err := msgType.Validate(); err != nil {
		return nil, err
	}

	return &ServiceMessage{
		id:        id,
		courierID: courierID,
		text:      text,
		msgType:   msgType,
	}, nil
}

// Validate ensures the ServiceMessage was created via NewServiceMessage.
func (m *ServiceMessage) Validate() error {
	if m == nil || m.id.Validate() != nil {
		return ErrServiceMessageIsNotConstructed
	}
	return nil
}

// ID returns the entry's surrogate identifier.
func (m *ServiceMessage) ID() kernel.UUID {
	return m.id
}

// CourierID returns the courier service the phrase belongs to.
func (m *ServiceMessage) CourierID() ID {
	return m.courierID
}

// Text returns the status phrase.
func (m *ServiceMessage) Text() string {
	return m.text
}

// Type returns the entry's classification type.
func (m *ServiceMessage) Type() MessageType {
	return m.msgType
}
