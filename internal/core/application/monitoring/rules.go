package monitoring

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// Escalation messages posted by the monitoring rules.
const (
	StuckStatusMessage   = "Status not updated"
	SilenceMessage       = "Order stuck in transit"
	rescheduleMessageFmt = "Order not moving for %d days"
)

// NewStuckStatusRule watches exceptions whose last comment matches an
// in-progress courier phrase. After the configured number of working days
// since that comment the rule posts a "status not updated" escalation under
// the system user without touching the owner.
//
// The reference date is deferred to trigger time: the enable conditions
// guarantee the last comment exists before it is fetched.
func NewStuckStatusRule(
	uowFactory commands.ExceptionUoWFactory,
	handler commands.HandleExceptionCommandHandler,
	comments ports.CommentRepository,
	del *delivery.Delivery,
	inProgressPhrase string,
	days int,
	userID int64,
	now func() time.Time,
) (*GenericRule, error) {
	if inProgressPhrase == "" {
		return nil, errs.NewValueIsRequiredError("inProgressPhrase")
	}

	cmd, err := commands.NewHandleExceptionCommand(del.OrderID(), userID)
	if err != nil {
		return nil, err
	}

	lastCommentDate := kernel.DeferredDate(func() (time.Time, error) {
		last, err := comments.GetLastByOrderID(context.Background(), del.OrderID())
		if err != nil {
			return time.Time{}, err
		}
		return last.CreatedAt(), nil
	})

	return NewGenericRule(
		uowFactory,
		[]Condition{
			NewExceptionExistsCondition(del, true),
			NewLastCommentContainsCondition(comments, del.OrderID(), inProgressPhrase),
		},
		[]Condition{
			NewWorkingDaysElapsedCondition(lastCommentDate, days, now),
		},
		[]Action{
			NewExceptionCommandAction(handler, cmd.WithMessage(StuckStatusMessage)),
		},
	)
}

// NewExcessiveRescheduleRule watches Logist-owned exceptions whose comment
// history accumulates distinct rescheduled delivery dates. Reaching the
// threshold posts an "order not moving" escalation without changing the
// owner.
func NewExcessiveRescheduleRule(
	uowFactory commands.ExceptionUoWFactory,
	handler commands.HandleExceptionCommandHandler,
	comments ports.CommentRepository,
	dictionary services.MessageDictionary,
	del *delivery.Delivery,
	threshold int,
	userID int64,
) (*GenericRule, error) {
	if del.CourierID() == nil {
		return nil, errs.NewValueIsRequiredError("courierID")
	}

	cmd, err := commands.NewHandleExceptionCommand(del.OrderID(), userID)
	if err != nil {
		return nil, err
	}

	return NewGenericRule(
		uowFactory,
		[]Condition{
			NewExceptionExistsCondition(del, true),
			NewExceptionOwnerCondition(del, exception.OwnerLogist),
		},
		[]Condition{
			NewRescheduleCountCondition(comments, dictionary, *del.CourierID(), del.OrderID(), threshold),
		},
		[]Action{
			NewExceptionCommandAction(handler, cmd.WithMessage(fmt.Sprintf(rescheduleMessageFmt, threshold))),
		},
	)
}

// NewCourierSilenceRule watches deliveries without an exception that left the
// stock but produced no courier feedback. After the configured number of
// working days since stock intake the rule creates a fresh exception under
// the system user, with the command's default Logist owner.
//
// Constructing the rule for a delivery without a stock-intake timestamp is a
// programming error and fails fast.
func NewCourierSilenceRule(
	uowFactory commands.ExceptionUoWFactory,
	handler commands.HandleExceptionCommandHandler,
	del *delivery.Delivery,
	days int,
	userID int64,
	now func() time.Time,
) (*GenericRule, error) {
	if del.InStockAt() == nil {
		return nil, errs.NewValueIsRequiredError("inStockAt")
	}

	cmd, err := commands.NewHandleExceptionCommand(del.OrderID(), userID)
	if err != nil {
		return nil, err
	}

	return NewGenericRule(
		uowFactory,
		[]Condition{
			NewExceptionExistsCondition(del, false),
		},
		[]Condition{
			NewWorkingDaysElapsedCondition(kernel.LiteralDate(*del.InStockAt()), days, now),
		},
		[]Action{
			NewExceptionCommandAction(handler, cmd.WithMessage(SilenceMessage)),
		},
	)
}
