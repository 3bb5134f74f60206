package monitoring

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// Rule parameters agreed with the back office: BRT escalates stuck "in
// delivery" statuses after one working day and excessive reschedules at three
// distinct dates; both primary couriers escalate courier silence after three
// working days from stock intake.
const (
	brtInProgressPhrase = "In consegna"
	brtStuckDays        = 1
	brtRescheduleCount  = 3
	silenceDays         = 3
)

// MonitoringService builds and runs the per-courier rule sets. Rules are
// transient: constructed fresh for every delivery on every pass.
type MonitoringService struct {
	uowFactory commands.ExceptionUoWFactory
	handler    commands.HandleExceptionCommandHandler
	comments   ports.CommentRepository
	dictionary services.MessageDictionary
	logger     *slog.Logger

	// now is replaceable for deterministic tests.
	now func() time.Time
}

// NewMonitoringService creates the monitoring entry point.
func NewMonitoringService(
	uowFactory commands.ExceptionUoWFactory,
	handler commands.HandleExceptionCommandHandler,
	comments ports.CommentRepository,
	dictionary services.MessageDictionary,
	logger *slog.Logger,
) (*MonitoringService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if comments == nil {
		return nil, errs.NewValueIsRequiredError("comments")
	}
	if dictionary == nil {
		return nil, errs.NewValueIsRequiredError("dictionary")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &MonitoringService{
		uowFactory: uowFactory,
		handler:    handler,
		comments:   comments,
		dictionary: dictionary,
		logger:     logger.With("component", "monitoring_service"),
		now:        time.Now,
	}, nil
}

// WithNow replaces the clock. Intended for tests.
func (s *MonitoringService) WithNow(now func() time.Time) *MonitoringService {
	s.now = now
	return s
}

// RunMonitoringForDelivery builds the delivery's courier rule set and
// evaluates it. Deliveries without a courier are skipped with a log line.
func (s *MonitoringService) RunMonitoringForDelivery(ctx context.Context, del *delivery.Delivery, userID int64) error {
	if err := del.Validate(); err != nil {
		return err
	}
	if del.CourierID() == nil {
		s.logger.InfoContext(ctx, "Delivery has no courier assigned, monitoring skipped",
			"order_id", del.OrderID())
		return nil
	}

	manager := NewRuleManager()
	if err := s.addCourierRules(manager, del, userID); err != nil {
		return err
	}

	return manager.EvaluateAll(ctx)
}

// addCourierRules registers the rule set agreed for the delivery's courier.
// The silence rule needs a stock-intake timestamp; deliveries still before
// stock intake simply do not get it.
func (s *MonitoringService) addCourierRules(manager *RuleManager, del *delivery.Delivery, userID int64) error {
	switch *del.CourierID() {
	case courier.IDBRT:
		stuck, err := NewStuckStatusRule(
			s.uowFactory, s.handler, s.comments, del,
			brtInProgressPhrase, brtStuckDays, userID, s.now,
		)
		if err != nil {
			return err
		}
		manager.Add(stuck)

		reschedule, err := NewExcessiveRescheduleRule(
			s.uowFactory, s.handler, s.comments, s.dictionary, del,
			brtRescheduleCount, userID,
		)
		if err != nil {
			return err
		}
		manager.Add(reschedule)

		return s.addSilenceRule(manager, del, userID)

	case courier.IDSDA:
		return s.addSilenceRule(manager, del, userID)
	}

	return nil
}

func (s *MonitoringService) addSilenceRule(manager *RuleManager, del *delivery.Delivery, userID int64) error {
	if del.InStockAt() == nil {
		return nil
	}

	silence, err := NewCourierSilenceRule(s.uowFactory, s.handler, del, silenceDays, userID, s.now)
	if err != nil {
		return err
	}

	manager.Add(silence)
	return nil
}
