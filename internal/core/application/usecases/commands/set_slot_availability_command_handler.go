package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/pkg/errs"
)

// SetSlotAvailabilityCommandHandler handles admin availability overrides.
// Overriding a date that was never touched materializes its row first, so
// the override lands on the synthesized default rather than on nothing.
type SetSlotAvailabilityCommandHandler struct {
	uowFactory SlotUoWFactory
}

// NewSetSlotAvailabilityCommandHandler creates a handler for availability overrides.
func NewSetSlotAvailabilityCommandHandler(uowFactory SlotUoWFactory) SetSlotAvailabilityCommandHandler {
	return SetSlotAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability override command.
func (h SetSlotAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetSlotAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()

	aggregate, err := slotRepo.Get(ctx, cmd.SlotID())
	if err != nil {
		return err
	}

	availability, err := slotRepo.GetAvailability(ctx, cmd.SlotID(), cmd.Date())
	if errors.Is(err, errs.ErrObjectNotFound) {
		availability2, defErr := slot.DefaultAvailability(aggregate, cmd.Date())
		if defErr != nil {
			return defErr
		}
		availability = *availability2
	} else if err != nil {
		return err
	}

	if err = availability.ApplyOverride(
		aggregate, cmd.MaxOrders(), cmd.AvailableOrders(), cmd.IsAvailable(),
	); err != nil {
		return err
	}

	if err = slotRepo.SaveAvailability(ctx, availability); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
