package jobs

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/core/application/services"

	"github.com/robfig/cron/v3"
)

// autoCreatePeriodDays is how far back each sweep looks for dispatched orders
// with unprocessed courier status text.
const autoCreatePeriodDays = 30

// AutoCreateJob periodically sweeps recently dispatched orders and feeds
// their pending courier status texts through exception processing.
type AutoCreateJob struct {
	ingestion    *services.IngestionService
	cron         *cron.Cron
	spec         string
	systemUserID int64
	logger       *slog.Logger
}

// NewAutoCreateJob creates the auto-create sweep job. The spec is a
// six-field cron expression; changes made by the sweep are attributed to
// systemUserID.
func NewAutoCreateJob(
	ingestion *services.IngestionService,
	spec string,
	systemUserID int64,
	logger *slog.Logger,
) *AutoCreateJob {
	return &AutoCreateJob{
		ingestion:    ingestion,
		cron:         cron.New(cron.WithSeconds()),
		spec:         spec,
		systemUserID: systemUserID,
		logger:       logger.With("component", "auto_create_job"),
	}
}

// Start schedules the auto-create sweep.
func (j *AutoCreateJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		to := time.Now()
		from := to.AddDate(0, 0, -autoCreatePeriodDays)

		if err := j.ingestion.RunAutoCreateForPeriod(ctx, from, to, j.systemUserID); err != nil {
			j.logger.ErrorContext(ctx, "Auto-create sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-create job started", "spec", j.spec)
	return nil
}

// Stop stops the auto-create sweep.
func (j *AutoCreateJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-create job stopped")
}
