package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetSlotsQueryIsNotConstructed = errors.New(
	"GetSlotsQuery must be created via NewGetSlotsQuery constructor",
)

// GetSlotsQuery retrieves every configured delivery slot, active or not.
// Backs the administrative slot listing; the customer-facing calendar goes
// through GetSlotAvailabilityQuery instead.
type GetSlotsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSlotsQuery creates a query to list all delivery slots.
func NewGetSlotsQuery() GetSlotsQuery {
	return GetSlotsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSlotsQuery) Validate() error {
	return q.guard.Validate(ErrGetSlotsQueryIsNotConstructed)
}

// SlotResponse is one delivery slot definition in the read model.
type SlotResponse struct {
	ID                kernel.UUID
	Name              string
	StartTime         string
	EndTime           string
	DefaultMaxOrders  int
	DisplayOrderLimit int
	HighThreshold     int
	MediumThreshold   int
	IsActive          bool
}
