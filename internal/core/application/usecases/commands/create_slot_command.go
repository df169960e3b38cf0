package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateSlotCommandIsNotConstructed = errors.New(
	"CreateSlotCommand must be created via NewCreateSlotCommand constructor",
)

// CreateSlotCommand registers a new delivery time window, e.g.
// "Morning 10:00-12:00" with a capacity of 50 orders per day.
//
// Example:
//
//	cmd, err := NewCreateSlotCommand("Morning", "10:00", "12:00", 50, 40, 60, 85)
//	if err != nil {
//	    return fmt.Errorf("invalid slot data: %w", err)
//	}
//	slotID, err := handler.Handle(ctx, cmd)
type CreateSlotCommand struct { //nolint:recvcheck //using for validation
	name              string
	startTime         slot.TimeOfDay
	endTime           slot.TimeOfDay
	defaultMaxOrders  int
	displayOrderLimit int
	highThreshold     int
	mediumThreshold   int

	guard guard.ConstructorGuard
}

// NewCreateSlotCommand creates a command to register a delivery slot.
// Times are given as HH:MM strings; numeric limits are validated in full by
// the aggregate constructor when the handler runs.
func NewCreateSlotCommand(
	name, startTime, endTime string,
	defaultMaxOrders, displayOrderLimit int,
	highThreshold, mediumThreshold int,
) (CreateSlotCommand, error) {
	cmd := CreateSlotCommand{
		defaultMaxOrders:  defaultMaxOrders,
		displayOrderLimit: displayOrderLimit,
		highThreshold:     highThreshold,
		mediumThreshold:   mediumThreshold,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setWindow(startTime, endTime),
	); err != nil {
		return CreateSlotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSlotCommand) Validate() error {
	return c.guard.Validate(ErrCreateSlotCommandIsNotConstructed)
}

// Name returns the customer-facing slot name.
func (c CreateSlotCommand) Name() string {
	return c.name
}

// StartTime returns the start of the delivery window.
func (c CreateSlotCommand) StartTime() slot.TimeOfDay {
	return c.startTime
}

// EndTime returns the end of the delivery window.
func (c CreateSlotCommand) EndTime() slot.TimeOfDay {
	return c.endTime
}

// DefaultMaxOrders returns the hard per-date capacity ceiling.
func (c CreateSlotCommand) DefaultMaxOrders() int {
	return c.defaultMaxOrders
}

// DisplayOrderLimit returns the per-date capacity offered to customers.
func (c CreateSlotCommand) DisplayOrderLimit() int {
	return c.displayOrderLimit
}

// HighThreshold returns the utilization percentage below which availability
// renders as "high".
func (c CreateSlotCommand) HighThreshold() int {
	return c.highThreshold
}

// MediumThreshold returns the utilization percentage below which availability
// renders as "medium".
func (c CreateSlotCommand) MediumThreshold() int {
	return c.mediumThreshold
}

func (c *CreateSlotCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateSlotCommand) setWindow(startTime, endTime string) error {
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
