package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand moves an order's delivery along its lifecycle:
// assigned, picked_up, in_transit, delivered, or cancelled. Couriers may
// attach a proof photo URL and their current position while in transit.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	status   assignment.Status
	photoURL *string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status update command.
// Latitude and longitude must be supplied together or not at all.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	status string,
	photoURL *string,
	latitude, longitude *float64,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		photoURL: photoURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setLocation(latitude, longitude),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the order whose delivery is being updated.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the target lifecycle status.
func (c UpdateDeliveryStatusCommand) Status() assignment.Status {
	return c.status
}

// PhotoURL returns the courier's proof photo URL, if provided.
func (c UpdateDeliveryStatusCommand) PhotoURL() *string {
	return c.photoURL
}

// Location returns the courier's reported position, if provided.
func (c UpdateDeliveryStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status string) error {
	parsed, err := assignment.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}

func (c *UpdateDeliveryStatusCommand) setLocation(latitude, longitude *float64) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return errs.NewValueIsRequiredError("latitude and longitude")
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}
	c.location = &point
	return nil
}
