package commands

import (
	"context"

	"dispatch/internal/core/domain/model/slot"
)

// UpdateSlotCommandHandler handles the business logic for slot redefinition.
type UpdateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
}

// NewUpdateSlotCommandHandler creates a handler for slot update operations.
func NewUpdateSlotCommandHandler(uowFactory SlotUoWFactory) UpdateSlotCommandHandler {
	return UpdateSlotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the slot update command.
// The existing slot is loaded first so a missing slot surfaces as
// errs.ObjectNotFoundError before any write happens.
func (h UpdateSlotCommandHandler) Handle(ctx context.Context, cmd UpdateSlotCommand) error {
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

	if _, err := slotRepo.Get(ctx, cmd.SlotID()); err != nil {
		return err
	}

	aggregate, err := slot.RestoreDeliverySlot(
		cmd.SlotID(),
		cmd.Name(),
		cmd.StartTime(), cmd.EndTime(),
		cmd.DefaultMaxOrders(), cmd.DisplayOrderLimit(),
		cmd.HighThreshold(), cmd.MediumThreshold(),
		cmd.IsActive(),
	)
	if err != nil {
		return err
	}

	if err = slotRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
