// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the delivery-exception workflow.
//
// # Available Jobs
//
// 1. AutoCreateJob - Sweeps recently dispatched orders and feeds unprocessed
// courier status texts through exception classification and dispatch.
//
// 2. MonitoringJob - Evaluates courier-specific monitoring rules over open
// exceptions and over deliveries whose courier has gone silent since stock
// intake.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(ingestion, monitoringService, deliveries,
//		autoCreateSpec, monitoringSpec, systemUserID, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take six-field cron expressions (with a seconds field) so
// deployments can tune sweep frequency without code changes.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - A failing delivery never stops the rest of a monitoring sweep
// - Failed job starts will stop any already running jobs
package jobs
