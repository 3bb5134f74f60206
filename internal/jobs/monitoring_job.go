package jobs

import (
	"context"
	"log/slog"

	"backoffice/internal/core/application/monitoring"
	"backoffice/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// MonitoringJob periodically evaluates courier-specific monitoring rules over
// deliveries with open exceptions and over deliveries whose courier has gone
// silent since stock intake.
type MonitoringJob struct {
	service      *monitoring.MonitoringService
	deliveries   ports.DeliveryRepository
	cron         *cron.Cron
	spec         string
	systemUserID int64
	logger       *slog.Logger
}

// NewMonitoringJob creates the monitoring sweep job.
func NewMonitoringJob(
	service *monitoring.MonitoringService,
	deliveries ports.DeliveryRepository,
	spec string,
	systemUserID int64,
	logger *slog.Logger,
) *MonitoringJob {
	return &MonitoringJob{
		service:      service,
		deliveries:   deliveries,
		cron:         cron.New(cron.WithSeconds()),
		spec:         spec,
		systemUserID: systemUserID,
		logger:       logger.With("component", "monitoring_job"),
	}
}

// Start schedules the monitoring sweep.
func (j *MonitoringJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Monitoring job started", "spec", j.spec)
	return nil
}

// Stop stops the monitoring sweep.
func (j *MonitoringJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Monitoring job stopped")
}

// run evaluates rules for every candidate delivery. One failing delivery does
// not stop the sweep.
func (j *MonitoringJob) run(ctx context.Context) {
	withExceptions, err := j.deliveries.GetActiveWithExceptions(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load deliveries with exceptions", "error", err)
		return
	}

	silent, err := j.deliveries.GetInStockWithoutExceptions(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load silence candidates", "error", err)
		return
	}

	for _, del := range append(withExceptions, silent...) {
		if err := j.service.RunMonitoringForDelivery(ctx, del, j.systemUserID); err != nil {
			j.logger.ErrorContext(ctx, "Monitoring failed for delivery",
				"order_id", del.OrderID(),
				"error", err)
		}
	}
}
