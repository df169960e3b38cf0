package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrBulkAssignOrdersCommandIsNotConstructed = errors.New(
	"BulkAssignOrdersCommand must be created via NewBulkAssignOrdersCommand constructor",
)

// BulkAssignOrdersCommand assigns a batch of orders to one courier in a
// single call, typically issued by a dispatcher distributing the morning
// queue. Orders are processed independently: one bad order never blocks
// the rest.
type BulkAssignOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs  []kernel.UUID
	courierID kernel.UUID
	priority  assignment.Priority

	guard guard.ConstructorGuard
}

// NewBulkAssignOrdersCommand creates a bulk assignment command.
// The batch must not be empty and the courier and priority are validated up
// front; individual order identifiers are validated when each order is
// processed, so a malformed one fails alone.
func NewBulkAssignOrdersCommand(
	orderIDs []kernel.UUID,
	courierID kernel.UUID,
	priority string,
) (BulkAssignOrdersCommand, error) {
	if len(orderIDs) == 0 {
		return BulkAssignOrdersCommand{}, errs.NewValueIsRequiredError("orderIds")
	}

	if err := courierID.Validate(); err != nil {
		return BulkAssignOrdersCommand{}, err
	}

	parsed, err := assignment.ParsePriority(priority)
	if err != nil {
		return BulkAssignOrdersCommand{}, err
	}

	return BulkAssignOrdersCommand{
		orderIDs:  orderIDs,
		courierID: courierID,
		priority:  parsed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignOrdersCommandIsNotConstructed)
}

// OrderIDs returns the orders to assign.
func (c BulkAssignOrdersCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// CourierID returns the courier receiving the batch.
func (c BulkAssignOrdersCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Priority returns the handling priority applied to every order.
func (c BulkAssignOrdersCommand) Priority() assignment.Priority {
	return c.priority
}
