package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry constructor")

// InitialAssignmentReason is the reason recorded for synthesized history
// entries when an assignment predates history logging.
const InitialAssignmentReason = "Initial assignment"

// HistoryEntry is an append-only record of a courier change for an order.
// Entries are written best-effort on reassignment: a failed write is logged,
// never surfaced, and never rolls back the reassignment itself.
type HistoryEntry struct {
	id           kernel.UUID
	orderID      kernel.UUID
	oldCourierID *kernel.UUID
	newCourierID kernel.UUID
	reason       string
	createdAt    time.Time

	isConstructed bool
}

// NewHistoryEntry creates a history entry for a courier change.
// oldCourierID is nil for synthesized initial-assignment entries.
func NewHistoryEntry(
	id, orderID kernel.UUID,
	oldCourierID *kernel.UUID,
	newCourierID kernel.UUID,
	reason string,
	createdAt time.Time,
) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		oldCourierID:  oldCourierID,
		reason:        reason,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setNewCourierID(newCourierID),
		entry.validateOldCourierID(),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
func RestoreHistoryEntry(
	id, orderID kernel.UUID,
	oldCourierID *kernel.UUID,
	newCourierID kernel.UUID,
	reason string,
	createdAt time.Time,
) (*HistoryEntry, error) {
	return NewHistoryEntry(id, orderID, oldCourierID, newCourierID, reason, createdAt)
}

// Validate ensures the entry was created through a constructor.
func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *HistoryEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e *HistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// OldCourierID returns the previous courier, nil for initial assignments.
func (e *HistoryEntry) OldCourierID() *kernel.UUID {
	return e.oldCourierID
}

// NewCourierID returns the courier the order was handed to.
func (e *HistoryEntry) NewCourierID() kernel.UUID {
	return e.newCourierID
}

// Reason returns the operator-supplied reason for the change.
func (e *HistoryEntry) Reason() string {
	return e.reason
}

// CreatedAt returns when the change was recorded.
func (e *HistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *HistoryEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *HistoryEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *HistoryEntry) setNewCourierID(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}
	e.newCourierID = newCourierID
	return nil
}

func (e *HistoryEntry) validateOldCourierID() error {
	if e.oldCourierID == nil {
		return nil
	}
	return e.oldCourierID.Validate()
}
