package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// handoverViaAssignReason is recorded in assignment history when an already
// assigned order is handed over through the assign endpoint rather than the
// explicit reassign one.
const handoverViaAssignReason = "Reassigned via assignment"

// AssignOrderResult reports what the assignment upsert did.
type AssignOrderResult struct {
	AssignmentID kernel.UUID
	Updated      bool
}

// AssignOrderCommandHandler orchestrates the order-to-courier assignment
// upsert. The courier must exist and be active on the platform; the order
// snapshot is frozen at assignment time, with missing amount or items count
// resolved from the order catalog.
type AssignOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	orders     ports.OrderCatalog
	couriers   ports.CourierRegistry
	log        *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for assignment operations.
func NewAssignOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	orders ports.OrderCatalog,
	couriers ports.CourierRegistry,
	log *slog.Logger,
) AssignOrderCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		couriers:   couriers,
		log:        log,
	}
}

// Handle processes the assignment command.
//
// A fresh order gets a new assignment in "assigned" status. An order that
// already carries one is handed over to the requested courier: the status
// resets to "assigned", terminal timestamps clear, and the original snapshot
// stays frozen. Two callers racing on the first assignment of an order are
// serialized by the storage unique constraint; the loser retries as a
// handover, so both requests succeed with the last courier winning.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context,
	cmd AssignOrderCommand,
) (AssignOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignOrderResult{}, err
	}

	if _, err := h.couriers.GetActiveCourier(ctx, cmd.CourierID()); err != nil {
		return AssignOrderResult{}, err
	}

	result, err := h.handover(ctx, cmd)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return AssignOrderResult{}, err
	}

	snapshot, err := h.resolveSnapshot(ctx, cmd)
	if err != nil {
		return AssignOrderResult{}, err
	}

	result, err = h.insert(ctx, cmd, snapshot)
	if errors.Is(err, errs.ErrConflict) {
		// lost the race for the first assignment; the order exists now
		return h.handover(ctx, cmd)
	}

	return result, err
}

// resolveSnapshot builds the frozen order snapshot, querying the order
// catalog whenever the caller did not supply the amount or items count.
func (h AssignOrderCommandHandler) resolveSnapshot(
	ctx context.Context,
	cmd AssignOrderCommand,
) (assignment.OrderSnapshot, error) {
	name := cmd.CustomerName()
	phone := cmd.CustomerPhone()
	address := cmd.DeliveryAddress()
	amount := cmd.TotalAmount()
	items := cmd.ItemsCount()

	if amount == nil || items == nil {
		summary, err := h.orders.GetOrderSummary(ctx, cmd.OrderID())
		if err != nil {
			return assignment.OrderSnapshot{}, err
		}
		if name == "" {
			name = summary.CustomerName
		}
		if phone == "" {
			phone = summary.CustomerPhone
		}
		if address == "" {
			address = summary.DeliveryAddress
		}
		if amount == nil {
			amount = &summary.TotalAmount
		}
		if items == nil {
			items = &summary.ItemsCount
		}
	}

	return assignment.NewOrderSnapshot(name, phone, address, *amount, *items)
}

func (h AssignOrderCommandHandler) insert(
	ctx context.Context,
	cmd AssignOrderCommand,
	snapshot assignment.OrderSnapshot,
) (AssignOrderResult, error) {
	aggregate, err := assignment.NewAssignment(
		kernel.NewUUID(), cmd.OrderID(), cmd.CourierID(), snapshot, cmd.Priority())
	if err != nil {
		return AssignOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AssignmentRepository().Add(ctx, aggregate); err != nil {
		return AssignOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	return AssignOrderResult{AssignmentID: aggregate.ID()}, nil
}

func (h AssignOrderCommandHandler) handover(
	ctx context.Context,
	cmd AssignOrderCommand,
) (AssignOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AssignmentRepository()

	aggregate, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return AssignOrderResult{}, err
	}

	oldCourierID := aggregate.CourierID()
	if err = aggregate.Reassign(cmd.CourierID()); err != nil {
		return AssignOrderResult{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return AssignOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrderResult{}, err
	}

	if !oldCourierID.IsEqual(cmd.CourierID()) {
		h.recordHistory(ctx, cmd.OrderID(), oldCourierID, cmd.CourierID(), handoverViaAssignReason)
	}

	return AssignOrderResult{AssignmentID: aggregate.ID(), Updated: true}, nil
}

// recordHistory appends the courier change to the audit trail after the
// handover is already committed. Failures are logged, never surfaced.
func (h AssignOrderCommandHandler) recordHistory(
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
