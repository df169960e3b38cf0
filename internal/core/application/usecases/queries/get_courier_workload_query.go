package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierWorkloadQueryIsNotConstructed = errors.New(
	"GetCourierWorkloadQuery must be created via NewGetCourierWorkloadQuery constructor",
)

// GetCourierWorkloadQuery retrieves the dispatcher's workload board: per
// courier, the total orders ever assigned and the breakdown by status.
type GetCourierWorkloadQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCourierWorkloadQuery creates a workload query.
func NewGetCourierWorkloadQuery() GetCourierWorkloadQuery {
	return GetCourierWorkloadQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCourierWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierWorkloadQueryIsNotConstructed)
}

// CourierWorkloadResponse is one courier's row on the workload board.
// TotalOrders covers every assignment the courier ever carried, cancelled
// ones included; ActiveTotal is the open work still in their hands.
type CourierWorkloadResponse struct {
	CourierID   kernel.UUID
	Name        string
	TotalOrders int
	Assigned    int
	PickedUp    int
	InTransit   int
	Delivered   int
	ActiveTotal int
}
