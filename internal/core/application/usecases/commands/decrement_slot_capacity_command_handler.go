package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// DecrementSlotCapacityCommandHandler consumes slot capacity at checkout.
//
// The counter update itself is a single atomic clamped decrement in storage,
// so two concurrent orders racing for the last unit cannot drive the counter
// negative: one observes Previous=1/Remaining=0, the other Previous=0.
type DecrementSlotCapacityCommandHandler struct {
	uowFactory SlotUoWFactory
}

// NewDecrementSlotCapacityCommandHandler creates a handler for capacity decrements.
func NewDecrementSlotCapacityCommandHandler(uowFactory SlotUoWFactory) DecrementSlotCapacityCommandHandler {
	return DecrementSlotCapacityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the decrement command and returns the counter state
// around the decrement. A first touch of a date materializes its default
// availability row before decrementing.
func (h DecrementSlotCapacityCommandHandler) Handle(
	ctx context.Context,
	cmd DecrementSlotCapacityCommand,
) (ports.DecrementResult, error) {
	if err := cmd.Validate(); err != nil {
		return ports.DecrementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.DecrementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()

	aggregate, err := slotRepo.Get(ctx, cmd.SlotID())
	if err != nil {
		return ports.DecrementResult{}, err
	}

	if err = slotRepo.EnsureAvailability(ctx, aggregate, cmd.Date()); err != nil {
		return ports.DecrementResult{}, err
	}

	result, err := slotRepo.DecrementAvailability(ctx, cmd.SlotID(), cmd.Date(), cmd.Quantity())
	if err != nil {
		return ports.DecrementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.DecrementResult{}, err
	}

	return result, nil
}
