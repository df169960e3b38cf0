package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
)

// CreateSlotCommandHandler handles the business logic for slot creation.
// New slots are active immediately and offered at checkout for every future
// date at their display order limit.
type CreateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
}

// NewCreateSlotCommandHandler creates a handler for slot creation operations.
// Requires a SlotUoWFactory for transactional persistence.
func NewCreateSlotCommandHandler(uowFactory SlotUoWFactory) CreateSlotCommandHandler {
	return CreateSlotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the slot creation command and returns the new slot's ID.
func (h CreateSlotCommandHandler) Handle(ctx context.Context, cmd CreateSlotCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := slot.NewDeliverySlot(
		kernel.NewUUID(),
		cmd.Name(),
		cmd.StartTime(), cmd.EndTime(),
		cmd.DefaultMaxOrders(), cmd.DisplayOrderLimit(),
		cmd.HighThreshold(), cmd.MediumThreshold(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SlotRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
