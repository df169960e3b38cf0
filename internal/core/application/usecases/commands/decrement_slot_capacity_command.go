package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDecrementSlotCapacityCommandIsNotConstructed = errors.New(
	"DecrementSlotCapacityCommand must be created via NewDecrementSlotCapacityCommand constructor",
)

// DecrementSlotCapacityCommand consumes capacity from a slot on a date,
// issued by the checkout flow when an order is placed. The decrement clamps
// at zero and never fails for lack of capacity; callers read the returned
// counters to decide whether the slot was already full.
type DecrementSlotCapacityCommand struct { //nolint:recvcheck //using for validation
	slotID   kernel.UUID
	date     time.Time
	quantity int

	guard guard.ConstructorGuard
}

// NewDecrementSlotCapacityCommand creates a capacity decrement command.
// The date is given as a YYYY-MM-DD string; quantity must be positive.
func NewDecrementSlotCapacityCommand(
	slotID kernel.UUID,
	date string,
	quantity int,
) (DecrementSlotCapacityCommand, error) {
	cmd := DecrementSlotCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setDate(date),
		cmd.setQuantity(quantity),
	); err != nil {
		return DecrementSlotCapacityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecrementSlotCapacityCommand) Validate() error {
	return c.guard.Validate(ErrDecrementSlotCapacityCommandIsNotConstructed)
}

// SlotID returns the slot whose capacity is consumed.
func (c DecrementSlotCapacityCommand) SlotID() kernel.UUID {
	return c.slotID
}

// Date returns the delivery date the order was placed for.
func (c DecrementSlotCapacityCommand) Date() time.Time {
	return c.date
}

// Quantity returns how many units of capacity to consume.
func (c DecrementSlotCapacityCommand) Quantity() int {
	return c.quantity
}

func (c *DecrementSlotCapacityCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}
	c.slotID = slotID
	return nil
}

func (c *DecrementSlotCapacityCommand) setDate(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	c.date = slot.NormalizeDate(parsed)
	return nil
}

func (c *DecrementSlotCapacityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
