package assignment

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrOrderSnapshotIsNotConstructed indicates an OrderSnapshot was not created
// through NewOrderSnapshot.
var ErrOrderSnapshotIsNotConstructed = errors.New(
	"OrderSnapshot must be created via NewOrderSnapshot constructor")

// OrderSnapshot captures the customer-facing order details at assignment
// time. The snapshot is frozen: once an assignment carries it, later changes
// to the order do not flow back into it.
type OrderSnapshot struct { //nolint:recvcheck //using for validation
	customerName    string
	customerPhone   string
	deliveryAddress string
	totalAmount     float64
	itemsCount      int

	guard guard.ConstructorGuard
}

// NewOrderSnapshot creates a validated OrderSnapshot.
// Contact fields may be empty (legacy orders lack them); amount and items
// count must not be negative. A zero amount is a legitimate value, e.g. a
// fully discounted order.
func NewOrderSnapshot(
	customerName, customerPhone, deliveryAddress string,
	totalAmount float64,
	itemsCount int,
) (OrderSnapshot, error) {
	snapshot := OrderSnapshot{
		customerName:    customerName,
		customerPhone:   customerPhone,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		snapshot.setTotalAmount(totalAmount),
		snapshot.setItemsCount(itemsCount),
	); err != nil {
		return OrderSnapshot{}, err
	}

	return snapshot, nil
}

// Validate ensures the snapshot was created through NewOrderSnapshot.
func (s OrderSnapshot) Validate() error {
	return s.guard.Validate(ErrOrderSnapshotIsNotConstructed)
}

// CustomerName returns the customer name captured at assignment time.
func (s OrderSnapshot) CustomerName() string {
	return s.customerName
}

// CustomerPhone returns the customer phone captured at assignment time.
func (s OrderSnapshot) CustomerPhone() string {
	return s.customerPhone
}

// DeliveryAddress returns the delivery address captured at assignment time.
func (s OrderSnapshot) DeliveryAddress() string {
	return s.deliveryAddress
}

// TotalAmount returns the order total captured at assignment time.
// Earnings are computed against this value.
func (s OrderSnapshot) TotalAmount() float64 {
	return s.totalAmount
}

// ItemsCount returns the total item quantity captured at assignment time.
func (s OrderSnapshot) ItemsCount() int {
	return s.itemsCount
}

func (s *OrderSnapshot) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount", fmt.Errorf("%f is negative", totalAmount))
	}
	s.totalAmount = totalAmount
	return nil
}

func (s *OrderSnapshot) setItemsCount(itemsCount int) error {
	if itemsCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemsCount", fmt.Errorf("%d is negative", itemsCount))
	}
	s.itemsCount = itemsCount
	return nil
}
