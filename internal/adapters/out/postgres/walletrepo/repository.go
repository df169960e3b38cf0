package walletrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a wallet transaction. Duplicates are absorbed by the unique
// indexes with ON CONFLICT DO NOTHING, so a replayed credit reports a
// conflict without poisoning the surrounding transaction.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("transaction")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// CountEarningsOnDate counts the courier's distinct credited orders on a
// calendar day.
func (r *GormWalletRepository) CountEarningsOnDate(
	ctx context.Context,
	courierID kernel.UUID,
	date time.Time,
) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	day := slot.NormalizeDate(date)

	var count int64
	err := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("courier_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			courierID.Bytes(), string(wallet.TypeEarning), day, day.AddDate(0, 0, 1)).
		Distinct("order_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetActiveTiers retrieves active target bonus tiers ordered by ascending
// minimum order count.
func (r *GormWalletRepository) GetActiveTiers(ctx context.Context) ([]*wallet.TargetTier, error) {
	var dtos []TargetTierDTO
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("min_orders").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tiers := make([]*wallet.TargetTier, 0, len(dtos))
	for _, dto := range dtos {
		tier, convErr := tierToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		tiers = append(tiers, tier)
	}

	return tiers, nil
}
