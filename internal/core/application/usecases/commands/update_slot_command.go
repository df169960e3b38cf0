package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateSlotCommandIsNotConstructed = errors.New(
	"UpdateSlotCommand must be created via NewUpdateSlotCommand constructor",
)

// UpdateSlotCommand replaces the definition of an existing delivery slot,
// including its active flag. Per-date availability rows already materialized
// keep their counters; only defaults for untouched dates change.
type UpdateSlotCommand struct { //nolint:recvcheck //using for validation
	slotID            kernel.UUID
	name              string
	startTime         slot.TimeOfDay
	endTime           slot.TimeOfDay
	defaultMaxOrders  int
	displayOrderLimit int
	highThreshold     int
	mediumThreshold   int
	isActive          bool

	guard guard.ConstructorGuard
}

// NewUpdateSlotCommand creates a command to redefine a delivery slot.
func NewUpdateSlotCommand(
	slotID kernel.UUID,
	name, startTime, endTime string,
	defaultMaxOrders, displayOrderLimit int,
	highThreshold, mediumThreshold int,
	isActive bool,
) (UpdateSlotCommand, error) {
	cmd := UpdateSlotCommand{
		defaultMaxOrders:  defaultMaxOrders,
		displayOrderLimit: displayOrderLimit,
		highThreshold:     highThreshold,
		mediumThreshold:   mediumThreshold,
		isActive:          isActive,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setName(name),
		cmd.setWindow(startTime, endTime),
	); err != nil {
		return UpdateSlotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSlotCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSlotCommandIsNotConstructed)
}

// SlotID returns the slot being redefined.
func (c UpdateSlotCommand) SlotID() kernel.UUID {
	return c.slotID
}

// Name returns the customer-facing slot name.
func (c UpdateSlotCommand) Name() string {
	return c.name
}

// StartTime returns the start of the delivery window.
func (c UpdateSlotCommand) StartTime() slot.TimeOfDay {
	return c.startTime
}

// EndTime returns the end of the delivery window.
func (c UpdateSlotCommand) EndTime() slot.TimeOfDay {
	return c.endTime
}

// DefaultMaxOrders returns the hard per-date capacity ceiling.
func (c UpdateSlotCommand) DefaultMaxOrders() int {
	return c.defaultMaxOrders
}

// DisplayOrderLimit returns the per-date capacity offered to customers.
func (c UpdateSlotCommand) DisplayOrderLimit() int {
	return c.displayOrderLimit
}

// HighThreshold returns the "high" availability threshold percentage.
func (c UpdateSlotCommand) HighThreshold() int {
	return c.highThreshold
}

// MediumThreshold returns the "medium" availability threshold percentage.
func (c UpdateSlotCommand) MediumThreshold() int {
	return c.mediumThreshold
}

// IsActive reports whether the slot stays offered at checkout.
func (c UpdateSlotCommand) IsActive() bool {
	return c.isActive
}

func (c *UpdateSlotCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}
	c.slotID = slotID
	return nil
}

func (c *UpdateSlotCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *UpdateSlotCommand) setWindow(startTime, endTime string) error {
	start, err := slot.ParseTimeOfDay(startTime)
	if err != nil {
		return err
	}
	end, err := slot.ParseTimeOfDay(endTime)
	if err != nil {
		return err
	}

	c.startTime = start
	c.endTime = end
	return nil
}
