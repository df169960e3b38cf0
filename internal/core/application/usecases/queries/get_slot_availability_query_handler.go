package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSlotAvailabilityQueryHandler builds the checkout availability calendar.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// availability rows missing from storage are synthesized from slot defaults.
type GetSlotAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetSlotAvailabilityQueryHandler creates a handler for availability queries.
// Requires a GORM database connection for query execution.
func NewGetSlotAvailabilityQueryHandler(db *gorm.DB) GetSlotAvailabilityQueryHandler {
	return GetSlotAvailabilityQueryHandler{db: db}
}

// Handle executes the availability query.
// Returns one row per active slot per date, ordered by date and slot start
// time, with the availability level classified against each slot's
// thresholds.
func (h GetSlotAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetSlotAvailabilityQuery,
) ([]SlotAvailabilityResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	slots, err := h.loadActiveSlots(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := h.loadAvailabilityRows(ctx, query.From(), query.To())
	if err != nil {
		return nil, err
	}

	responses := make([]SlotAvailabilityResponse, 0, len(slots))
	for date := query.From(); !date.After(query.To()); date = date.AddDate(0, 0, 1) {
		for _, s := range slots {
			row, ok := overrides[availabilityKey{slotID: s.ID().String(), date: date.Format("2006-01-02")}]
			if !ok {
				synthesized, defErr := slot.DefaultAvailability(s, date)
				if defErr != nil {
					return nil, defErr
				}
				row = *synthesized
			}

			responses = append(responses, SlotAvailabilityResponse{
				SlotID:          s.ID(),
				SlotName:        s.Name(),
				StartTime:       s.StartTime().String(),
				EndTime:         s.EndTime().String(),
				Date:            date,
				AvailableOrders: row.AvailableOrders(),
				MaxOrders:       row.EffectiveMaxOrders(s),
				Level:           row.Level(s),
				IsAvailable:     row.IsAvailable() && s.IsActive(),
			})
		}
	}

	return responses, nil
}

func (h GetSlotAvailabilityQueryHandler) loadActiveSlots(ctx context.Context) ([]*slot.DeliverySlot, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			start_time,
			end_time,
			default_max_orders,
			display_order_limit,
			high_threshold,
			medium_threshold
		FROM delivery_slots
		WHERE is_active
		ORDER BY start_time, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*slot.DeliverySlot, 0)

	for rows.Next() {
		var (
			id                 uuid.UUID
			name               string
			startRaw, endRaw   string
			maxOrders, display int
			highThr, mediumThr int
		)

		if err = rows.Scan(
			&id, &name, &startRaw, &endRaw, &maxOrders, &display, &highThr, &mediumThr,
		); err != nil {
			return nil, err
		}

		slotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		start, timeErr := slot.ParseTimeOfDay(startRaw)
		if timeErr != nil {
			return nil, timeErr
		}
		end, timeErr := slot.ParseTimeOfDay(endRaw)
		if timeErr != nil {
			return nil, timeErr
		}

		s, slotErr := slot.RestoreDeliverySlot(
			slotID, name, start, end, maxOrders, display, highThr, mediumThr, true)
		if slotErr != nil {
			return nil, slotErr
		}

		slots = append(slots, s)
	}

	return slots, rows.Err()
}

type availabilityKey struct {
	slotID string
	date   string
}

func (h GetSlotAvailabilityQueryHandler) loadAvailabilityRows(
	ctx context.Context,
	from, to time.Time,
) (map[availabilityKey]slot.Availability, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			slot_id,
			date,
			available_orders,
			max_orders_override,
			is_available
		FROM delivery_slot_availability
		WHERE date BETWEEN ? AND ?
	`, from, to).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[availabilityKey]slot.Availability)

	for rows.Next() {
		var (
			id        uuid.UUID
			date      time.Time
			available int
			override  *int
			open      bool
		)

		if err = rows.Scan(&id, &date, &available, &override, &open); err != nil {
			return nil, err
		}

		slotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		availability, availErr := slot.RestoreAvailability(slotID, date, available, override, open)
		if availErr != nil {
			return nil, availErr
		}

		key := availabilityKey{
			slotID: slotID.String(),
			date:   slot.NormalizeDate(date).Format("2006-01-02"),
		}
		overrides[key] = *availability
	}

	return overrides, rows.Err()
}
