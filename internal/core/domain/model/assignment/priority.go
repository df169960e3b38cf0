package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority indicates how urgently an assignment should be handled.
// It is informational: couriers see it, the status machine ignores it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts the wire representation into a Priority.
// An empty string defaults to PriorityNormal.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(raw) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return Priority(raw), nil
	case "":
		return PriorityNormal, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"priority", fmt.Errorf("%q is not a known priority", raw))
	}
}

// String returns the wire representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Validate checks that the Priority holds one of the defined values.
func (p Priority) Validate() error {
	_, err := ParsePriority(string(p))
	return err
}
