// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery dispatch service.
//
// # Available Jobs
//
// 1. EarningReconciliationJob - Runs every minute to retry wallet credits
// that failed after a delivery was confirmed. Failed credits are parked in
// the reconciliation outbox by the status update handler; this job drains
// the outbox oldest first and completes tasks whose credit succeeds.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(reconUoWFactory, creditEarningHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed credit retry never aborts the batch: the task's attempt counter
// and last error are recorded and the task stays pending for the next run.
// Credits are idempotent, so a task that was actually credited on an earlier
// attempt completes harmlessly when retried.
package jobs
