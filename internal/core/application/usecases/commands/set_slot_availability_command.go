package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetSlotAvailabilityCommandIsNotConstructed = errors.New(
	"SetSlotAvailabilityCommand must be created via NewSetSlotAvailabilityCommand constructor",
)

// SetSlotAvailabilityCommand applies an admin override to one slot on one
// date: a different capacity ceiling, a corrected remaining counter, or
// closing the date entirely. Nil fields are left unchanged.
//
// Example:
//
//	closed := false
//	cmd, err := NewSetSlotAvailabilityCommand(slotID, "2026-08-30", nil, nil, &closed)
//	// the slot takes no more orders on that date
type SetSlotAvailabilityCommand struct { //nolint:recvcheck //using for validation
	slotID          kernel.UUID
	date            time.Time
	maxOrders       *int
	availableOrders *int
	isAvailable     *bool

	guard guard.ConstructorGuard
}

// NewSetSlotAvailabilityCommand creates an availability override command.
// The date is given as a YYYY-MM-DD string; at least one override field must
// be present.
func NewSetSlotAvailabilityCommand(
	slotID kernel.UUID,
	date string,
	maxOrders, availableOrders *int,
	isAvailable *bool,
) (SetSlotAvailabilityCommand, error) {
	cmd := SetSlotAvailabilityCommand{
		maxOrders:       maxOrders,
		availableOrders: availableOrders,
		isAvailable:     isAvailable,
		guard:           guard.NewConstructorGuard(),
	}

	if maxOrders == nil && availableOrders == nil && isAvailable == nil {
		return SetSlotAvailabilityCommand{}, errs.NewValueIsRequiredError("override fields")
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setDate(date),
	); err != nil {
		return SetSlotAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetSlotAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetSlotAvailabilityCommandIsNotConstructed)
}

// SlotID returns the slot being overridden.
func (c SetSlotAvailabilityCommand) SlotID() kernel.UUID {
	return c.slotID
}

// Date returns the calendar date being overridden.
func (c SetSlotAvailabilityCommand) Date() time.Time {
	return c.date
}

// MaxOrders returns the capacity ceiling override, nil to keep the current one.
func (c SetSlotAvailabilityCommand) MaxOrders() *int {
	return c.maxOrders
}

// AvailableOrders returns the remaining counter override, nil to keep the current one.
func (c SetSlotAvailabilityCommand) AvailableOrders() *int {
	return c.availableOrders
}

// IsAvailable returns the open/closed override, nil to keep the current state.
func (c SetSlotAvailabilityCommand) IsAvailable() *bool {
	return c.isAvailable
}

func (c *SetSlotAvailabilityCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}
	c.slotID = slotID
	return nil
}

func (c *SetSlotAvailabilityCommand) setDate(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	c.date = slot.NormalizeDate(parsed)
	return nil
}
