package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
)

// EarningCreditor credits a courier's wallet for a delivered order,
// satisfied by CreditEarningCommandHandler.
type EarningCreditor interface {
	Handle(ctx context.Context, cmd CreditEarningCommand) error
}

// UpdateDeliveryStatusCommandHandler advances an assignment through its
// lifecycle. A transition to "delivered" additionally credits the courier's
// wallet; that credit runs after the transition commits and must never undo
// it, so a failed credit is logged and parked in the reconciliation outbox
// for a background retry instead.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory      AssignmentUoWFactory
	earnings        EarningCreditor
	reconUoWFactory ReconciliationUoWFactory
	log             *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory AssignmentUoWFactory,
	earnings EarningCreditor,
	reconUoWFactory ReconciliationUoWFactory,
	log *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:      uowFactory,
		earnings:        earnings,
		reconUoWFactory: reconUoWFactory,
		log:             log,
	}
}

// Handle processes the status update command.
// Invalid transitions (backward moves, repeats, moves out of a terminal
// status) are rejected by the aggregate before anything is written.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	repo := uow.AssignmentRepository()

	aggregate, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(
		cmd.Status(), cmd.PhotoURL(), cmd.Location(), time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Status() == assignment.Delivered {
		h.creditEarning(ctx, cmd.OrderID(), aggregate.CourierID())
	}

	return nil
}

func (h UpdateDeliveryStatusCommandHandler) creditEarning(
	ctx context.Context,
	orderID, courierID kernel.UUID,
) {
	creditCmd, err := NewCreditEarningCommand(orderID)
	if err != nil {
		h.log.ErrorContext(ctx, "earning credit command rejected",
			"orderId", orderID.String(), "error", err)
		return
	}

	if err = h.earnings.Handle(ctx, creditCmd); err == nil {
		return
	}

	h.log.ErrorContext(ctx, "earning credit failed, enqueueing reconciliation",
		"orderId", orderID.String(), "courierId", courierID.String(), "error", err)

	h.enqueueReconciliation(ctx, orderID, courierID, err)
}

func (h UpdateDeliveryStatusCommandHandler) enqueueReconciliation(
	ctx context.Context,
	orderID, courierID kernel.UUID,
	cause error,
) {
	task, err := wallet.NewReconciliationTask(orderID, courierID, cause.Error(), time.Now())
	if err != nil {
		h.log.ErrorContext(ctx, "reconciliation task rejected",
			"orderId", orderID.String(), "error", err)
		return
	}

	uow := h.reconUoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.log.ErrorContext(ctx, "reconciliation enqueue skipped",
			"orderId", orderID.String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReconciliationRepository().Enqueue(ctx, task); err != nil {
		h.log.ErrorContext(ctx, "reconciliation enqueue failed",
			"orderId", orderID.String(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.log.ErrorContext(ctx, "reconciliation enqueue commit failed",
			"orderId", orderID.String(), "error", err)
	}
}
