package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentHistoryQueryIsNotConstructed = errors.New(
	"GetAssignmentHistoryQuery must be created via NewGetAssignmentHistoryQuery constructor",
)

// GetAssignmentHistoryQuery retrieves the courier change trail for an order,
// newest first, ending with a synthesized initial-assignment entry so the
// trail always explains how the order got its first courier.
type GetAssignmentHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentHistoryQuery creates an assignment history query.
func NewGetAssignmentHistoryQuery(orderID kernel.UUID) (GetAssignmentHistoryQuery, error) {
	q := GetAssignmentHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetAssignmentHistoryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetAssignmentHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetAssignmentHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// AssignmentHistoryResponse is one courier change in the trail.
// ID is nil for the synthesized initial-assignment entry, which was never
// persisted as a history row.
type AssignmentHistoryResponse struct {
	ID           *kernel.UUID
	OrderID      kernel.UUID
	OldCourierID *kernel.UUID
	NewCourierID kernel.UUID
	Reason       string
	CreatedAt    time.Time
}
