package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand hands an assigned order over to a different courier,
// recording an operator-supplied reason in the assignment history.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	newCourierID kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a reassignment command.
// The reason is required: reassignments are audited operations.
func NewReassignOrderCommand(
	orderID, newCourierID kernel.UUID,
	reason string,
) (ReassignOrderCommand, error) {
	cmd := ReassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewCourierID(newCourierID),
		cmd.setReason(reason),
	); err != nil {
		return ReassignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the order being handed over.
func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewCourierID returns the courier taking over.
func (c ReassignOrderCommand) NewCourierID() kernel.UUID {
	return c.newCourierID
}

// Reason returns the operator-supplied handover reason.
func (c ReassignOrderCommand) Reason() string {
	return c.reason
}

func (c *ReassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ReassignOrderCommand) setNewCourierID(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}
	c.newCourierID = newCourierID
	return nil
}

func (c *ReassignOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
