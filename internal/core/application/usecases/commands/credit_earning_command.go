package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreditEarningCommandIsNotConstructed = errors.New(
	"CreditEarningCommand must be created via NewCreditEarningCommand constructor",
)

// CreditEarningCommand credits the courier's wallet for a delivered order.
// The operation is idempotent per order: crediting the same delivery twice,
// whether from a retried status update or a reconciliation replay, results
// in exactly one earning transaction.
type CreditEarningCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreditEarningCommand creates an earning credit command.
func NewCreditEarningCommand(orderID kernel.UUID) (CreditEarningCommand, error) {
	cmd := CreditEarningCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CreditEarningCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreditEarningCommand) Validate() error {
	return c.guard.Validate(ErrCreditEarningCommandIsNotConstructed)
}

// OrderID returns the delivered order being credited.
func (c CreditEarningCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CreditEarningCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
