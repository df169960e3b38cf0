package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentHistoryQueryHandler reads the courier change trail for an
// order. Persisted history rows only record handovers, so the handler
// synthesizes the initial-assignment entry from the assignment row itself
// and appends it as the oldest item.
type GetAssignmentHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentHistoryQueryHandler creates a handler for history queries.
func NewGetAssignmentHistoryQueryHandler(db *gorm.DB) GetAssignmentHistoryQueryHandler {
	return GetAssignmentHistoryQueryHandler{db: db}
}

// Handle executes the history query. Entries come back newest first; the
// last entry is always the synthesized initial assignment.
func (h GetAssignmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentHistoryQuery,
) ([]AssignmentHistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	currentCourierID, assignedAt, err := h.loadAssignment(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	entries, err := h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	// The first courier is whoever the oldest handover took the order from,
	// or the current courier when the order was never reassigned.
	initialCourierID := currentCourierID
	if len(entries) > 0 {
		oldest := entries[len(entries)-1]
		if oldest.OldCourierID != nil {
			initialCourierID = *oldest.OldCourierID
		}
	}

	entries = append(entries, AssignmentHistoryResponse{
		OrderID:      query.OrderID(),
		NewCourierID: initialCourierID,
		Reason:       assignment.InitialAssignmentReason,
		CreatedAt:    assignedAt,
	})

	return entries, nil
}

func (h GetAssignmentHistoryQueryHandler) loadAssignment(
	ctx context.Context,
	orderID kernel.UUID,
) (kernel.UUID, time.Time, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			created_at
		FROM delivery_assignments
		WHERE order_id = ?
	`, orderID.Bytes()).Row()

	var (
		id        uuid.UUID
		createdAt time.Time
	)

	if err := row.Scan(&id, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kernel.UUID{}, time.Time{}, errs.NewObjectNotFoundError("orderID", orderID)
		}
		return kernel.UUID{}, time.Time{}, err
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, time.Time{}, err
	}

	return courierID, createdAt, nil
}

func (h GetAssignmentHistoryQueryHandler) loadHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]AssignmentHistoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			old_courier_id,
			new_courier_id,
			reason,
			created_at
		FROM delivery_assignment_history
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AssignmentHistoryResponse, 0)

	for rows.Next() {
		var (
			id        uuid.UUID
			oldID     *uuid.UUID
			newID     uuid.UUID
			reason    string
			createdAt time.Time
		)

		if err = rows.Scan(&id, &oldID, &newID, &reason, &createdAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		newCourierID, idErr := kernel.UUIDFromBytes(newID[:])
		if idErr != nil {
			return nil, idErr
		}

		var oldCourierID *kernel.UUID
		if oldID != nil {
			converted, convErr := kernel.UUIDFromBytes(oldID[:])
			if convErr != nil {
				return nil, convErr
			}
			oldCourierID = &converted
		}

		entries = append(entries, AssignmentHistoryResponse{
			ID:           &entryID,
			OrderID:      orderID,
			OldCourierID: oldCourierID,
			NewCourierID: newCourierID,
			Reason:       reason,
			CreatedAt:    createdAt,
		})
	}

	return entries, rows.Err()
}
