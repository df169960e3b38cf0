package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ReassignOrderCommandHandler hands an order over to a different courier.
// The handover resets the assignment to "assigned" and clears terminal
// timestamps; the courier change is then appended to the history trail.
type ReassignOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	couriers   ports.CourierRegistry
	log        *slog.Logger
}

// NewReassignOrderCommandHandler creates a handler for reassignment operations.
func NewReassignOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	couriers ports.CourierRegistry,
	log *slog.Logger,
) ReassignOrderCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
		couriers:   couriers,
		log:        log,
	}
}

// Handle processes the reassignment command.
// The history write happens after the handover commits and is best-effort:
// a failed audit entry is logged but never undoes the handover.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.couriers.GetActiveCourier(ctx, cmd.NewCourierID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AssignmentRepository()

	aggregate, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldCourierID := aggregate.CourierID()
	if err = aggregate.Reassign(cmd.NewCourierID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordHistory(ctx, cmd.OrderID(), oldCourierID, cmd.NewCourierID(), cmd.Reason())

	return nil
}

func (h ReassignOrderCommandHandler) recordHistory(
	ctx context.Context,
	orderID, oldCourierID, newCourierID kernel.UUID,
	reason string,
) {
	entry, err := assignment.NewHistoryEntry(
		kernel.NewUUID(), orderID, &oldCourierID, newCourierID, reason, time.Now().UTC())
	if err != nil {
		h.log.WarnContext(ctx, "assignment history entry rejected",
			"orderId", orderID.String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.log.WarnContext(ctx, "assignment history write skipped",
			"orderId", orderID.String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AssignmentRepository().AddHistory(ctx, entry); err != nil {
		h.log.WarnContext(ctx, "assignment history write failed",
			"orderId", orderID.String(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.log.WarnContext(ctx, "assignment history commit failed",
			"orderId", orderID.String(), "error", err)
	}
}
