package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationBatchSize bounds how many parked credits one run picks up.
const reconciliationBatchSize = 100

// EarningReconciliationJob retries wallet credits that failed after a
// delivery was confirmed. Runs every minute, draining the reconciliation
// outbox oldest first.
type EarningReconciliationJob struct {
	uowFactory commands.ReconciliationUoWFactory
	creditor   commands.EarningCreditor
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewEarningReconciliationJob creates a job that retries parked earning credits.
func NewEarningReconciliationJob(
	uowFactory commands.ReconciliationUoWFactory,
	creditor commands.EarningCreditor,
	logger *slog.Logger,
) *EarningReconciliationJob {
	return &EarningReconciliationJob{
		uowFactory: uowFactory,
		creditor:   creditor,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "earning_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run at the top of every minute.
func (j *EarningReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		if err := j.runOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Earning reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earning reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *EarningReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earning reconciliation job stopped")
}

// runOnce retries one batch of parked credits. The credit itself is
// idempotent, so a task that was actually credited on an earlier attempt
// completes harmlessly here.
func (j *EarningReconciliationJob) runOnce(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ReconciliationRepository()

	tasks, err := repo.GetPending(ctx, reconciliationBatchSize)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		cmd, cmdErr := commands.NewCreditEarningCommand(task.OrderID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Dropping malformed reconciliation task",
				"taskID", task.ID().String(), "error", cmdErr)

			if err = repo.Complete(ctx, task); err != nil {
				return err
			}
			continue
		}

		if creditErr := j.creditor.Handle(ctx, cmd); creditErr != nil {
			j.logger.WarnContext(ctx, "Earning credit retry failed",
				"orderID", task.OrderID().String(),
				"attempts", task.Attempts()+1,
				"error", creditErr)

			task.RecordFailure(creditErr.Error())
			if err = repo.RecordFailure(ctx, task); err != nil {
				return err
			}
			continue
		}

		if err = repo.Complete(ctx, task); err != nil {
			return err
		}

		j.logger.InfoContext(ctx, "Parked earning credit reconciled",
			"orderID", task.OrderID().String())
	}

	return uow.Commit(ctx)
}
