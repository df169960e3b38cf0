package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// OrderAssigner is the single-order assignment dependency of the bulk
// handler, satisfied by AssignOrderCommandHandler.
type OrderAssigner interface {
	Handle(ctx context.Context, cmd AssignOrderCommand) (AssignOrderResult, error)
}

// BulkAssignFailure describes one order that could not be assigned.
type BulkAssignFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// BulkAssignResult separates the batch's orders into those that were newly
// assigned, those handed over from another courier, and those that failed.
type BulkAssignResult struct {
	Assigned []kernel.UUID
	Updated  []kernel.UUID
	Failed   []BulkAssignFailure
}

// BulkAssignOrdersCommandHandler processes a batch of assignments with
// per-order isolation: each order runs as its own upsert in its own
// transaction, and failures are collected rather than aborting the batch.
type BulkAssignOrdersCommandHandler struct {
	assigner OrderAssigner
}

// NewBulkAssignOrdersCommandHandler creates a handler for bulk assignments.
func NewBulkAssignOrdersCommandHandler(assigner OrderAssigner) BulkAssignOrdersCommandHandler {
	return BulkAssignOrdersCommandHandler{
		assigner: assigner,
	}
}

// Handle assigns every order in the batch to the command's courier and
// reports which orders were newly assigned, which were handed over, and
// which ones failed.
func (h BulkAssignOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd BulkAssignOrdersCommand,
) (BulkAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	result := BulkAssignResult{
		Assigned: make([]kernel.UUID, 0, len(cmd.OrderIDs())),
		Updated:  make([]kernel.UUID, 0),
		Failed:   make([]BulkAssignFailure, 0),
	}

	for _, orderID := range cmd.OrderIDs() {
		orderCmd, err := NewAssignOrderCommand(
			orderID, cmd.CourierID(), cmd.Priority().String(), "", "", "", nil, nil)
		if err != nil {
			result.Failed = append(result.Failed, BulkAssignFailure{
				OrderID: orderID,
				Reason:  err.Error(),
			})
			continue
		}

		orderResult, err := h.assigner.Handle(ctx, orderCmd)
		if err != nil {
			result.Failed = append(result.Failed, BulkAssignFailure{
				OrderID: orderID,
				Reason:  err.Error(),
			})
			continue
		}

		if orderResult.Updated {
			result.Updated = append(result.Updated, orderID)
		} else {
			result.Assigned = append(result.Assigned, orderID)
		}
	}

	return result, nil
}
