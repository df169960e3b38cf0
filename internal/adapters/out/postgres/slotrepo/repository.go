package slotrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlotRepository implements SlotRepository using GORM.
type GormSlotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSlotRepository creates a new GORM slot repository.
func NewGormSlotRepository(db *gorm.DB, tracker aggregateTracker) *GormSlotRepository {
	return &GormSlotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new slot definition to the database.
func (r *GormSlotRepository) Add(ctx context.Context, aggregate *slot.DeliverySlot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing slot definition to the database.
func (r *GormSlotRepository) Update(ctx context.Context, aggregate *slot.DeliverySlot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SlotDTO{}).
		Where("id = ?", dto.ID).
		Select(
			"name", "start_time", "end_time",
			"default_max_orders", "display_order_limit",
			"high_threshold", "medium_threshold", "is_active",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("slot", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a slot definition by ID.
func (r *GormSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.DeliverySlot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SlotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("slot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailability retrieves the availability row for a slot on a date.
func (r *GormSlotRepository) GetAvailability(
	ctx context.Context,
	slotID kernel.UUID,
	date time.Time,
) (slot.Availability, error) {
	if err := slotID.Validate(); err != nil {
		return slot.Availability{}, err
	}

	var dto AvailabilityDTO
	err := r.db.WithContext(ctx).
		First(&dto, "slot_id = ? AND date = ?", slotID.Bytes(), slot.NormalizeDate(date)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slot.Availability{}, errs.NewObjectNotFoundError("availability", slotID.String())
		}
		return slot.Availability{}, err
	}

	return availabilityToDomain(dto)
}

// SaveAvailability upserts an availability row, replacing any existing
// counters and overrides for the slot/date pair.
func (r *GormSlotRepository) SaveAvailability(ctx context.Context, availability slot.Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}

	dto := availabilityFromDomain(availability)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slot_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"available_orders", "max_orders_override", "is_available",
		}),
	}).Create(&dto).Error
}

// EnsureAvailability materializes the default availability row for a slot
// on a date if it does not exist yet. Existing rows are left untouched.
func (r *GormSlotRepository) EnsureAvailability(
	ctx context.Context,
	aggregate *slot.DeliverySlot,
	date time.Time,
) error {
	defaults, err := slot.DefaultAvailability(aggregate, date)
	if err != nil {
		return err
	}

	dto := availabilityFromDomain(*defaults)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&dto).Error
}

// DecrementAvailability atomically lowers the remaining capacity of a slot
// on a date, clamping at zero. The row lock taken by the inner select keeps
// concurrent checkouts from double-spending the same capacity.
func (r *GormSlotRepository) DecrementAvailability(
	ctx context.Context,
	slotID kernel.UUID,
	date time.Time,
	quantity int,
) (ports.DecrementResult, error) {
	if err := slotID.Validate(); err != nil {
		return ports.DecrementResult{}, err
	}
	if quantity <= 0 {
		return ports.DecrementResult{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	row := r.db.WithContext(ctx).Raw(`
		UPDATE delivery_slot_availability AS a
		SET available_orders = GREATEST(a.available_orders - ?, 0)
		FROM (
			SELECT slot_id, date, available_orders
			FROM delivery_slot_availability
			WHERE slot_id = ? AND date = ?
			FOR UPDATE
		) AS prev
		WHERE a.slot_id = prev.slot_id AND a.date = prev.date
		RETURNING prev.available_orders, a.available_orders
	`, quantity, slotID.Bytes(), slot.NormalizeDate(date)).Row()

	var result ports.DecrementResult
	if err := row.Scan(&result.Previous, &result.Remaining); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.DecrementResult{}, errs.NewObjectNotFoundError("availability", slotID.String())
		}
		return ports.DecrementResult{}, err
	}

	return result, nil
}
