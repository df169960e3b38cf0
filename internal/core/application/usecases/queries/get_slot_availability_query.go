// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetSlotAvailabilityQueryIsNotConstructed = errors.New(
	"GetSlotAvailabilityQuery must be created via NewGetSlotAvailabilityQuery constructor",
)

// defaultAvailabilityWindowDays is how many days of availability checkout
// shows when the caller does not narrow the range.
const defaultAvailabilityWindowDays = 7

// maxAvailabilityWindowDays caps the requested range; the checkout calendar
// never looks further ahead than a month.
const maxAvailabilityWindowDays = 31

// GetSlotAvailabilityQuery retrieves the checkout availability calendar:
// every active slot crossed with every date in the requested range.
//
// Dates are given as YYYY-MM-DD strings; empty values default to a
// seven-day window starting today.
type GetSlotAvailabilityQuery struct { //nolint:recvcheck //using for validation
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetSlotAvailabilityQuery creates an availability calendar query.
func NewGetSlotAvailabilityQuery(from, to string) (GetSlotAvailabilityQuery, error) {
	q := GetSlotAvailabilityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setRange(from, to); err != nil {
		return GetSlotAvailabilityQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSlotAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetSlotAvailabilityQueryIsNotConstructed)
}

// From returns the inclusive start of the date range.
func (q GetSlotAvailabilityQuery) From() time.Time {
	return q.from
}

// To returns the inclusive end of the date range.
func (q GetSlotAvailabilityQuery) To() time.Time {
	return q.to
}

func (q *GetSlotAvailabilityQuery) setRange(from, to string) error {
	q.from = slot.NormalizeDate(time.Now())
	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("from", err)
		}
		q.from = slot.NormalizeDate(parsed)
	}

	q.to = q.from.AddDate(0, 0, defaultAvailabilityWindowDays-1)
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("to", err)
		}
		q.to = slot.NormalizeDate(parsed)
	}

	if q.to.Before(q.from) {
		return errs.NewValueIsInvalidError("to")
	}
	if q.to.Sub(q.from) >= maxAvailabilityWindowDays*24*time.Hour {
		return errs.NewValueIsOutOfRangeError("to", q.to.Format("2006-01-02"), q.from.Format("2006-01-02"), maxAvailabilityWindowDays)
	}

	return nil
}

// SlotAvailabilityResponse is one slot on one date in the checkout calendar.
// Dates whose availability row was never materialized report the slot's
// defaults, so the calendar has no holes.
type SlotAvailabilityResponse struct {
	SlotID          kernel.UUID
	SlotName        string
	StartTime       string
	EndTime         string
	Date            time.Time
	AvailableOrders int
	MaxOrders       int
	Level           slot.AvailabilityLevel
	IsAvailable     bool
}
