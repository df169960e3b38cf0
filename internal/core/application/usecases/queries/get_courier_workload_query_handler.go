package queries

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierWorkloadQueryHandler builds the dispatcher's workload board.
// Assignment counts come from a direct SQL aggregate; courier names come
// from the platform registry so idle couriers still show up with zeros.
type GetCourierWorkloadQueryHandler struct {
	db       *gorm.DB
	couriers ports.CourierRegistry
}

// NewGetCourierWorkloadQueryHandler creates a handler for workload queries.
func NewGetCourierWorkloadQueryHandler(
	db *gorm.DB,
	couriers ports.CourierRegistry,
) GetCourierWorkloadQueryHandler {
	return GetCourierWorkloadQueryHandler{db: db, couriers: couriers}
}

// Handle executes the workload query.
// Returns one row per active courier sorted by open workload, busiest first.
func (h GetCourierWorkloadQueryHandler) Handle(
	ctx context.Context,
	query GetCourierWorkloadQuery,
) ([]CourierWorkloadResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active, err := h.couriers.ListActiveCouriers(ctx)
	if err != nil {
		return nil, err
	}

	board := make(map[string]*CourierWorkloadResponse, len(active))
	order := make([]string, 0, len(active))
	for _, info := range active {
		key := info.ID.String()
		board[key] = &CourierWorkloadResponse{CourierID: info.ID, Name: info.Name}
		order = append(order, key)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			status,
			COUNT(*)
		FROM delivery_assignments
		GROUP BY courier_id, status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     uuid.UUID
			status string
			count  int
		)

		if err = rows.Scan(&id, &status, &count); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		key := courierID.String()
		row, ok := board[key]
		if !ok {
			// courier no longer active on the platform but still carrying work
			row = &CourierWorkloadResponse{CourierID: courierID}
			board[key] = row
			order = append(order, key)
		}

		row.TotalOrders += count

		switch status {
		case assignment.Assigned.String():
			row.Assigned = count
		case assignment.PickedUp.String():
			row.PickedUp = count
		case assignment.InTransit.String():
			row.InTransit = count
		case assignment.Delivered.String():
			row.Delivered = count
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	responses := make([]CourierWorkloadResponse, 0, len(order))
	for _, key := range order {
		row := board[key]
		row.ActiveTotal = row.Assigned + row.PickedUp + row.InTransit
		responses = append(responses, *row)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].ActiveTotal > responses[j].ActiveTotal
	})

	return responses, nil
}
