package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for courier wallet
// transactions and the target bonus reference table.
type WalletRepository interface {
	// Add persists a wallet transaction. Duplicate earnings for the same
	// order, and duplicate target bonuses for the same courier and date,
	// return errs.ErrConflict; callers treat that as an idempotent no-op.
	Add(ctx context.Context, aggregate *wallet.Transaction) error

	// CountEarningsOnDate counts the distinct orders the courier holds an
	// earning transaction for on the given calendar day. Delivered orders
	// whose credit is still parked in the reconciliation outbox do not
	// count; only landed earnings feed the daily target bonus.
	CountEarningsOnDate(ctx context.Context, courierID kernel.UUID, date time.Time) (int, error)

	// GetActiveTiers retrieves the active target bonus tiers.
	GetActiveTiers(ctx context.Context) ([]*wallet.TargetTier, error)
}

// ReconciliationRepository defines the persistence contract for the earning
// reconciliation outbox.
type ReconciliationRepository interface {
	// Enqueue stores a new reconciliation task.
	Enqueue(ctx context.Context, task *wallet.ReconciliationTask) error

	// GetPending retrieves up to limit tasks, oldest first.
	GetPending(ctx context.Context, limit int) ([]*wallet.ReconciliationTask, error)

	// Complete removes a task once its earning credit landed.
	Complete(ctx context.Context, task *wallet.ReconciliationTask) error

	// RecordFailure persists the task's updated attempt counter and error.
	RecordFailure(ctx context.Context, task *wallet.ReconciliationTask) error
}
