package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSlotsQueryHandler lists delivery slot definitions.
type GetSlotsQueryHandler struct {
	db *gorm.DB
}

// NewGetSlotsQueryHandler creates a handler for slot listing queries.
func NewGetSlotsQueryHandler(db *gorm.DB) GetSlotsQueryHandler {
	return GetSlotsQueryHandler{db: db}
}

// Handle executes the slot listing query.
// Returns every slot ordered by start time, including deactivated ones, so
// operators can see and re-enable retired windows.
func (h GetSlotsQueryHandler) Handle(
	ctx context.Context,
	query GetSlotsQuery,
) ([]SlotResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			start_time,
			end_time,
			default_max_orders,
			display_order_limit,
			high_threshold,
			medium_threshold,
			is_active
		FROM delivery_slots
		ORDER BY start_time, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]SlotResponse, 0)

	for rows.Next() {
		var (
			id       uuid.UUID
			response SlotResponse
		)

		if err = rows.Scan(
			&id,
			&response.Name,
			&response.StartTime,
			&response.EndTime,
			&response.DefaultMaxOrders,
			&response.DisplayOrderLimit,
			&response.HighThreshold,
			&response.MediumThreshold,
			&response.IsActive,
		); err != nil {
			return nil, err
		}

		slotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = slotID

		responses = append(responses, response)
	}

	return responses, rows.Err()
}
