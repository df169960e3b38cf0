package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	earningReconciliationJob *EarningReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the reconciliation unit of work and the earning creditor as
// dependencies to wire up the job execution.
func NewJobManager(
	reconUoWFactory commands.ReconciliationUoWFactory,
	creditor commands.EarningCreditor,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		earningReconciliationJob: NewEarningReconciliationJob(reconUoWFactory, creditor, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.earningReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start earning reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.earningReconciliationJob.Stop()
}
