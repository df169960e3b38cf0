package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for order-to-courier
// assignment aggregates and their reassignment history.
type AssignmentRepository interface {
	// Add persists a new assignment. Each order carries at most one
	// assignment; inserting a second one for the same order returns
	// errs.ErrConflict.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetByOrderID retrieves the assignment for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// AddHistory appends a reassignment history entry. History is an audit
	// trail: writes are best-effort and never gate the triggering change.
	AddHistory(ctx context.Context, entry *assignment.HistoryEntry) error
}
