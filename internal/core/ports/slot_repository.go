// Package ports defines repository and collaborator interfaces for the
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
)

// DecrementResult reports the capacity counter state around an atomic
// decrement. Remaining never goes below zero: decrementing past the floor
// clamps instead of failing.
type DecrementResult struct {
	Previous  int
	Remaining int
}

// SlotRepository defines the persistence contract for delivery slot
// definitions and their per-date availability counters.
type SlotRepository interface {
	// Add persists a new slot definition.
	Add(ctx context.Context, aggregate *slot.DeliverySlot) error

	// Update persists changes to an existing slot definition.
	Update(ctx context.Context, aggregate *slot.DeliverySlot) error

	// Get retrieves a slot definition by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*slot.DeliverySlot, error)

	// GetAvailability retrieves the availability row for a slot on a date.
	// Returns errs.ObjectNotFoundError when the row was never materialized.
	GetAvailability(ctx context.Context, slotID kernel.UUID, date time.Time) (slot.Availability, error)

	// SaveAvailability upserts an availability row, replacing any existing
	// counters and overrides for the slot/date pair.
	SaveAvailability(ctx context.Context, availability slot.Availability) error

	// EnsureAvailability materializes the default availability row for a
	// slot on a date if it does not exist yet. Existing rows are left
	// untouched, so concurrent callers cannot reset a live counter.
	EnsureAvailability(ctx context.Context, aggregate *slot.DeliverySlot, date time.Time) error

	// DecrementAvailability atomically lowers the remaining capacity of a
	// slot on a date by quantity, clamping at zero. The availability row
	// must already exist.
	DecrementAvailability(
		ctx context.Context,
		slotID kernel.UUID,
		date time.Time,
		quantity int,
	) (DecrementResult, error)
}
