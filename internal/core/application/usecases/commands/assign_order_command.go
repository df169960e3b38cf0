package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand assigns an order to a courier. The operation is an
// upsert keyed by order: assigning an order that already has an assignment
// hands it over to the new courier instead of failing.
//
// Snapshot fields (customer name, phone, address, order total, items count)
// may be supplied by the caller; missing amount or items are resolved from
// the platform order catalog by the handler.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	priority  assignment.Priority

	customerName    string
	customerPhone   string
	deliveryAddress string
	totalAmount     *float64
	itemsCount      *int

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates an order assignment command.
// An empty priority string defaults to normal.
func NewAssignOrderCommand(
	orderID, courierID kernel.UUID,
	priority string,
	customerName, customerPhone, deliveryAddress string,
	totalAmount *float64,
	itemsCount *int,
) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		customerName:    customerName,
		customerPhone:   customerPhone,
		deliveryAddress: deliveryAddress,
		totalAmount:     totalAmount,
		itemsCount:      itemsCount,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setPriority(priority),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order being assigned.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier receiving the order.
func (c AssignOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Priority returns the handling priority.
func (c AssignOrderCommand) Priority() assignment.Priority {
	return c.priority
}

// CustomerName returns the caller-supplied customer name, may be empty.
func (c AssignOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the caller-supplied customer phone, may be empty.
func (c AssignOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// DeliveryAddress returns the caller-supplied delivery address, may be empty.
func (c AssignOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// TotalAmount returns the caller-supplied order total, nil to resolve from
// the order catalog.
func (c AssignOrderCommand) TotalAmount() *float64 {
	return c.totalAmount
}

// ItemsCount returns the caller-supplied item quantity, nil to resolve from
// the order catalog.
func (c AssignOrderCommand) ItemsCount() *int {
	return c.itemsCount
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *AssignOrderCommand) setPriority(priority string) error {
	parsed, err := assignment.ParsePriority(priority)
	if err != nil {
		return err
	}
	c.priority = parsed
	return nil
}
