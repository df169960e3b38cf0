package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery assignment.
// It implements a state machine with defined transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Delivered
//	    │            │            │
//	    └────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Forward jumps along the main chain
// are allowed (a courier may go straight from Assigned to Delivered when
// intermediate scans were skipped); moving backwards is not.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Assigned is the initial status when an order is mapped to a courier.
	Assigned

	// PickedUp indicates the courier has collected the order.
	PickedUp

	// InTransit indicates the order is on its way to the customer.
	InTransit

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the assignment was aborted. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts the wire representation of a status into a Status.
// Only the five defined statuses are accepted; anything else yields a
// validation error.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a known delivery status", raw))
}

// Validate checks that the Status holds one of the five defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// chainRank orders the main delivery chain for forward-only transitions.
// Terminal Cancelled sits outside the chain.
func (s Status) chainRank() int {
	switch s {
	case Assigned:
		return 1
	case PickedUp:
		return 2
	case InTransit:
		return 3
	case Delivered:
		return 4
	default:
		return 0
	}
}

// TransitionTo validates and performs the transition to target.
//
// Rules:
//   - target must be one of the five defined statuses
//   - no transition leaves a terminal status
//   - Cancelled is reachable from any non-terminal status
//   - chain statuses only move forward (skipping steps is allowed)
//
// Returns the new status, or a validation error describing why the
// transition is illegal.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}

	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, target))
	}

	if target == Cancelled {
		return Cancelled, nil
	}

	if target.chainRank() <= s.chainRank() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition from %s to %s", s, target))
	}

	return target, nil
}
