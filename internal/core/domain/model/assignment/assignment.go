package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment constructor")

// Assignment is the aggregate root for the single live mapping of one order
// to one courier.
//
// Invariants:
//   - Must have valid identifiers for itself, the order, and the courier
//   - At most one assignment exists per order (enforced by storage via a
//     unique constraint on order_id; the aggregate holds one order only)
//   - Status transitions follow the Status state machine
//   - Terminal statuses carry their timestamp (deliveredAt / cancelledAt)
//   - The order snapshot is frozen at assignment time
type Assignment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	status    Status
	priority  Priority
	snapshot  OrderSnapshot

	// proof-of-delivery fields reported by the courier during transit
	photoURL *string
	location *kernel.GeoPoint

	deliveredAt *time.Time
	cancelledAt *time.Time

	isConstructed bool
}

// NewAssignment creates a new Assignment in Assigned status.
// This is the create path of the order-to-courier upsert: both the first
// assignment of an order and a re-assignment through the same endpoint go
// through equivalent validation.
func NewAssignment(
	id, orderID, courierID kernel.UUID,
	snapshot OrderSnapshot,
	priority Priority,
) (*Assignment, error) {
	a := &Assignment{
		status:        Assigned,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		a.setSnapshot(snapshot),
		a.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
// Unlike NewAssignment it accepts any valid status and the optional
// delivery-proof and terminal-timestamp fields.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	status Status,
	priority Priority,
	snapshot OrderSnapshot,
	photoURL *string,
	location *kernel.GeoPoint,
	deliveredAt, cancelledAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		isConstructed: true,
		photoURL:      photoURL,
		location:      location,
		deliveredAt:   deliveredAt,
		cancelledAt:   cancelledAt,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		a.setStatus(status),
		a.setSnapshot(snapshot),
		a.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Assignment was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the identifier of the assigned order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the identifier of the courier carrying the order.
func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

// Status returns the current lifecycle status.
func (a *Assignment) Status() Status {
	return a.status
}

// Priority returns the handling priority.
func (a *Assignment) Priority() Priority {
	return a.priority
}

// Snapshot returns the order details frozen at assignment time.
func (a *Assignment) Snapshot() OrderSnapshot {
	return a.snapshot
}

// PhotoURL returns the last courier-reported proof photo URL, if any.
func (a *Assignment) PhotoURL() *string {
	return a.photoURL
}

// Location returns the last courier-reported position, if any.
func (a *Assignment) Location() *kernel.GeoPoint {
	return a.location
}

// DeliveredAt returns the delivery timestamp, set on transition to Delivered.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// CancelledAt returns the cancellation timestamp, set on transition to Cancelled.
func (a *Assignment) CancelledAt() *time.Time {
	return a.cancelledAt
}

// Reassign hands the order over to a different courier and resets the status
// to Assigned. Terminal timestamps are cleared: the delivery starts over.
func (a *Assignment) Reassign(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}

	a.courierID = newCourierID
	a.status = Assigned
	a.deliveredAt = nil
	a.cancelledAt = nil
	return nil
}

// TransitionTo moves the assignment to the target status.
//
// On transitions to a non-terminal status the optional proof photo and
// location are recorded as provided. A transition to Delivered stamps
// deliveredAt with now; a transition to Cancelled stamps cancelledAt.
func (a *Assignment) TransitionTo(
	target Status,
	photoURL *string,
	location *kernel.GeoPoint,
	now time.Time,
) error {
	newStatus, err := a.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	a.status = newStatus

	switch {
	case newStatus == Delivered:
		a.deliveredAt = &now
	case newStatus == Cancelled:
		a.cancelledAt = &now
	default:
		if photoURL != nil {
			a.photoURL = photoURL
		}
		if location != nil {
			a.location = location
		}
	}

	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	a.courierID = courierID
	return nil
}

func (a *Assignment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

func (a *Assignment) setSnapshot(snapshot OrderSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	a.snapshot = snapshot
	return nil
}

func (a *Assignment) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	a.priority = priority
	return nil
}
