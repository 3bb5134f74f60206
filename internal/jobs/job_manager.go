package jobs

import (
	"fmt"
	"log/slog"

	"backoffice/internal/core/application/monitoring"
	"backoffice/internal/core/application/services"
	"backoffice/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoCreateJob *AutoCreateJob
	monitoringJob *MonitoringJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	ingestion *services.IngestionService,
	monitoringService *monitoring.MonitoringService,
	deliveries ports.DeliveryRepository,
	autoCreateSpec string,
	monitoringSpec string,
	systemUserID int64,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoCreateJob: NewAutoCreateJob(ingestion, autoCreateSpec, systemUserID, logger),
		monitoringJob: NewMonitoringJob(monitoringService, deliveries, monitoringSpec, systemUserID, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoCreateJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-create job: %w", err)
	}

	if err := jm.monitoringJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoCreateJob.Stop()
		return fmt.Errorf("failed to start monitoring job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoCreateJob.Stop()
	jm.monitoringJob.Stop()
}
