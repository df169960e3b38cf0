package slot

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrSlotIsNotConstructed is returned when a DeliverySlot instance was not
// created through NewDeliverySlot or RestoreDeliverySlot.
var ErrSlotIsNotConstructed = errors.New(
	"DeliverySlot must be created via NewDeliverySlot or RestoreDeliverySlot constructor")

// AvailabilityLevel is the coarse capacity indicator shown to customers
// during checkout ("plenty of room" vs "almost full").
type AvailabilityLevel string

const (
	AvailabilityHigh   AvailabilityLevel = "high"
	AvailabilityMedium AvailabilityLevel = "medium"
	AvailabilityLow    AvailabilityLevel = "low"
)

// DeliverySlot is a named delivery time window shared across calendar dates,
// e.g. "Morning 10:00-12:00". Per-date capacity lives in Availability rows;
// the slot defines the defaults and the display thresholds.
//
// Invariants:
//   - defaultMaxOrders and displayOrderLimit are positive
//   - displayOrderLimit never exceeds defaultMaxOrders
//   - thresholds are percentages with high < medium (utilization below the
//     high threshold renders as "high" availability, above the medium one
//     as "low")
//   - start time precedes end time
type DeliverySlot struct {
	id                kernel.UUID
	name              string
	startTime         TimeOfDay
	endTime           TimeOfDay
	defaultMaxOrders  int
	displayOrderLimit int
	highThreshold     int
	mediumThreshold   int
	isActive          bool

	isConstructed bool
}

// NewDeliverySlot creates a validated, active DeliverySlot.
func NewDeliverySlot(
	id kernel.UUID,
	name string,
	startTime, endTime TimeOfDay,
	defaultMaxOrders, displayOrderLimit int,
	highThreshold, mediumThreshold int,
) (*DeliverySlot, error) {
	return newSlot(id, name, startTime, endTime,
		defaultMaxOrders, displayOrderLimit, highThreshold, mediumThreshold, true)
}

// RestoreDeliverySlot reconstructs a DeliverySlot from persistence,
// including its active flag.
func RestoreDeliverySlot(
	id kernel.UUID,
	name string,
	startTime, endTime TimeOfDay,
	defaultMaxOrders, displayOrderLimit int,
	highThreshold, mediumThreshold int,
	isActive bool,
) (*DeliverySlot, error) {
	return newSlot(id, name, startTime, endTime,
		defaultMaxOrders, displayOrderLimit, highThreshold, mediumThreshold, isActive)
}

func newSlot(
	id kernel.UUID,
	name string,
	startTime, endTime TimeOfDay,
	defaultMaxOrders, displayOrderLimit int,
	highThreshold, mediumThreshold int,
	isActive bool,
) (*DeliverySlot, error) {
	s := &DeliverySlot{
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setWindow(startTime, endTime),
		s.setLimits(defaultMaxOrders, displayOrderLimit),
		s.setThresholds(highThreshold, mediumThreshold),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the slot was created through a constructor.
func (s *DeliverySlot) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSlotIsNotConstructed
	}
	return nil
}

// ID returns the slot's unique identifier.
func (s *DeliverySlot) ID() kernel.UUID {
	return s.id
}

// Name returns the customer-facing slot name.
func (s *DeliverySlot) Name() string {
	return s.name
}

// StartTime returns the start of the delivery window.
func (s *DeliverySlot) StartTime() TimeOfDay {
	return s.startTime
}

// EndTime returns the end of the delivery window.
func (s *DeliverySlot) EndTime() TimeOfDay {
	return s.endTime
}

// DefaultMaxOrders returns the hard per-date capacity ceiling.
func (s *DeliverySlot) DefaultMaxOrders() int {
	return s.defaultMaxOrders
}

// DisplayOrderLimit returns the default per-date capacity offered to
// customers before an admin override exists.
func (s *DeliverySlot) DisplayOrderLimit() int {
	return s.displayOrderLimit
}

// HighThreshold returns the utilization percentage below which the slot
// renders as "high" availability.
func (s *DeliverySlot) HighThreshold() int {
	return s.highThreshold
}

// MediumThreshold returns the utilization percentage below which the slot
// renders as "medium" availability; above it the slot renders as "low".
func (s *DeliverySlot) MediumThreshold() int {
	return s.mediumThreshold
}

// IsActive reports whether the slot is offered at checkout.
func (s *DeliverySlot) IsActive() bool {
	return s.isActive
}

// Deactivate withdraws the slot from checkout. Existing availability rows
// and assignments are untouched.
func (s *DeliverySlot) Deactivate() {
	s.isActive = false
}

// Activate offers the slot at checkout again.
func (s *DeliverySlot) Activate() {
	s.isActive = true
}

// LevelFor classifies per-date utilization against the slot's thresholds.
func (s *DeliverySlot) LevelFor(availableOrders, maxOrders int) AvailabilityLevel {
	if maxOrders <= 0 || availableOrders <= 0 {
		return AvailabilityLow
	}

	usedPercent := (maxOrders - availableOrders) * 100 / maxOrders
	switch {
	case usedPercent < s.highThreshold:
		return AvailabilityHigh
	case usedPercent < s.mediumThreshold:
		return AvailabilityMedium
	default:
		return AvailabilityLow
	}
}

func (s *DeliverySlot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *DeliverySlot) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *DeliverySlot) setWindow(startTime, endTime TimeOfDay) error {
	if err := errors.Join(startTime.Validate(), endTime.Validate()); err != nil {
		return err
	}
	if !startTime.Before(endTime) {
		return errs.NewValueIsInvalidErrorWithCause(
			"endTime", fmt.Errorf("%s is not after start time %s", endTime, startTime))
	}
	s.startTime = startTime
	s.endTime = endTime
	return nil
}

func (s *DeliverySlot) setLimits(defaultMaxOrders, displayOrderLimit int) error {
	if defaultMaxOrders <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"defaultMaxOrders", fmt.Errorf("%d is not greater than 0", defaultMaxOrders))
	}
	if displayOrderLimit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"displayOrderLimit", fmt.Errorf("%d is not greater than 0", displayOrderLimit))
	}
	if displayOrderLimit > defaultMaxOrders {
		return errs.NewValueIsOutOfRangeError("displayOrderLimit", displayOrderLimit, 1, defaultMaxOrders)
	}
	s.defaultMaxOrders = defaultMaxOrders
	s.displayOrderLimit = displayOrderLimit
	return nil
}

func (s *DeliverySlot) setThresholds(highThreshold, mediumThreshold int) error {
	if highThreshold <= 0 || highThreshold > 100 {
		return errs.NewValueIsOutOfRangeError("highThreshold", highThreshold, 1, 100)
	}
	if mediumThreshold <= 0 || mediumThreshold > 100 {
		return errs.NewValueIsOutOfRangeError("mediumThreshold", mediumThreshold, 1, 100)
	}
	if highThreshold >= mediumThreshold {
		return errs.NewValueIsInvalidErrorWithCause(
			"highThreshold",
			fmt.Errorf("high threshold %d must be below medium threshold %d", highThreshold, mediumThreshold))
	}
	s.highThreshold = highThreshold
	s.mediumThreshold = mediumThreshold
	return nil
}

// NormalizeDate truncates a timestamp to its calendar date in UTC.
// Availability rows are keyed by (slot, date); all date handling goes
// through this helper so keys compare reliably.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
