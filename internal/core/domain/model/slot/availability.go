package slot

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrAvailabilityIsNotConstructed is returned when an Availability instance
// was not created through DefaultAvailability or RestoreAvailability.
var ErrAvailabilityIsNotConstructed = errors.New(
	"Availability must be created via DefaultAvailability or RestoreAvailability constructor")

// Availability is the per-slot-per-date remaining order capacity.
// Rows are created lazily: a date with no row behaves as the slot's default
// until the first decrement or admin override materializes it.
//
// Invariant: availableOrders stays within [0, effective max orders] at all
// times. Under concurrency the lower bound is additionally enforced by the
// storage layer's atomic clamped decrement.
type Availability struct {
	slotID            kernel.UUID
	date              time.Time
	availableOrders   int
	maxOrdersOverride *int
	isAvailable       bool

	isConstructed bool
}

// DefaultAvailability synthesizes the availability row a date has before any
// mutation: the slot's display limit, no override, open for orders.
func DefaultAvailability(s *DeliverySlot, date time.Time) (*Availability, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Availability{
		slotID:          s.ID(),
		date:            NormalizeDate(date),
		availableOrders: s.DisplayOrderLimit(),
		isAvailable:     true,
		isConstructed:   true,
	}, nil
}

// RestoreAvailability reconstructs an Availability from persistence.
func RestoreAvailability(
	slotID kernel.UUID,
	date time.Time,
	availableOrders int,
	maxOrdersOverride *int,
	isAvailable bool,
) (*Availability, error) {
	if err := slotID.Validate(); err != nil {
		return nil, err
	}
	if availableOrders < 0 {
		return nil, errs.NewValueIsOutOfRangeError("availableOrders", availableOrders, 0, "max orders")
	}

	return &Availability{
		slotID:            slotID,
		date:              NormalizeDate(date),
		availableOrders:   availableOrders,
		maxOrdersOverride: maxOrdersOverride,
		isAvailable:       isAvailable,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Availability was created through a constructor.
func (a *Availability) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAvailabilityIsNotConstructed
	}
	return nil
}

// SlotID returns the slot this row belongs to.
func (a *Availability) SlotID() kernel.UUID {
	return a.slotID
}

// Date returns the calendar date this row covers.
func (a *Availability) Date() time.Time {
	return a.date
}

// AvailableOrders returns the remaining order capacity.
func (a *Availability) AvailableOrders() int {
	return a.availableOrders
}

// MaxOrdersOverride returns the admin capacity override, nil when the slot
// default applies.
func (a *Availability) MaxOrdersOverride() *int {
	return a.maxOrdersOverride
}

// IsAvailable reports whether the slot is open for this date.
func (a *Availability) IsAvailable() bool {
	return a.isAvailable
}

// EffectiveMaxOrders returns the capacity ceiling for this date: the admin
// override when present, otherwise the slot's default.
func (a *Availability) EffectiveMaxOrders(s *DeliverySlot) int {
	if a.maxOrdersOverride != nil {
		return *a.maxOrdersOverride
	}
	return s.DefaultMaxOrders()
}

// ApplyOverride applies an admin override to this row. Nil fields are left
// unchanged. Rejects availableOrders above the effective max, where the max
// override in the same call is taken into account first.
func (a *Availability) ApplyOverride(
	s *DeliverySlot,
	maxOrders, availableOrders *int,
	isAvailable *bool,
) error {
	if err := s.Validate(); err != nil {
		return err
	}

	newOverride := a.maxOrdersOverride
	if maxOrders != nil {
		if *maxOrders <= 0 {
			return errs.NewValueIsOutOfRangeError("maxOrders", *maxOrders, 1, "unbounded")
		}
		newOverride = maxOrders
	}

	effectiveMax := s.DefaultMaxOrders()
	if newOverride != nil {
		effectiveMax = *newOverride
	}

	if availableOrders != nil {
		if *availableOrders < 0 || *availableOrders > effectiveMax {
			return errs.NewValueIsOutOfRangeError("availableOrders", *availableOrders, 0, effectiveMax)
		}
		a.availableOrders = *availableOrders
	} else if a.availableOrders > effectiveMax {
		// lowering the ceiling clamps remaining capacity
		a.availableOrders = effectiveMax
	}

	a.maxOrdersOverride = newOverride

	if isAvailable != nil {
		a.isAvailable = *isAvailable
	}

	return nil
}

// Level classifies this row's utilization against the slot's thresholds.
func (a *Availability) Level(s *DeliverySlot) AvailabilityLevel {
	if !a.isAvailable {
		return AvailabilityLow
	}
	return s.LevelFor(a.availableOrders, a.EffectiveMaxOrders(s))
}
