package walletrepo

import (
	"context"

	"dispatch/internal/core/domain/model/wallet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReconciliationRepository implements ReconciliationRepository using GORM.
// The table is an outbox of earning credits that failed after a delivery was
// committed; a background job drains it.
type GormReconciliationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormReconciliationRepository creates a new GORM reconciliation repository.
func NewGormReconciliationRepository(db *gorm.DB, tracker aggregateTracker) *GormReconciliationRepository {
	return &GormReconciliationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Enqueue stores a reconciliation task. An order already parked keeps its
// original task, so repeated failures do not multiply retries.
func (r *GormReconciliationRepository) Enqueue(ctx context.Context, task *wallet.ReconciliationTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := taskFromDomain(task)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// GetPending retrieves up to limit tasks, oldest first.
func (r *GormReconciliationRepository) GetPending(
	ctx context.Context,
	limit int,
) ([]*wallet.ReconciliationTask, error) {
	var dtos []ReconciliationTaskDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*wallet.ReconciliationTask, 0, len(dtos))
	for _, dto := range dtos {
		task, convErr := taskToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Complete removes a task once its earning credit landed.
func (r *GormReconciliationRepository) Complete(ctx context.Context, task *wallet.ReconciliationTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&ReconciliationTaskDTO{}, "id = ?", task.ID().Bytes()).Error
}

// RecordFailure persists the task's updated attempt counter and error.
func (r *GormReconciliationRepository) RecordFailure(ctx context.Context, task *wallet.ReconciliationTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&ReconciliationTaskDTO{}).
		Where("id = ?", task.ID().Bytes()).
		Updates(map[string]any{
			"attempts":   task.Attempts(),
			"last_error": task.LastError(),
		}).Error
}
