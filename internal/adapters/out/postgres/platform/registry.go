package platform

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// courierRole is the platform user role carried by courier accounts.
const courierRole = "delivery"

// GormCourierRegistry implements CourierRegistry over the platform's users
// table.
type GormCourierRegistry struct {
	db *gorm.DB
}

// NewGormCourierRegistry creates a read-only courier registry adapter.
func NewGormCourierRegistry(db *gorm.DB) *GormCourierRegistry {
	return &GormCourierRegistry{db: db}
}

// GetActiveCourier retrieves a courier that exists and is active.
func (r *GormCourierRegistry) GetActiveCourier(
	ctx context.Context,
	id kernel.UUID,
) (ports.CourierInfo, error) {
	if err := id.Validate(); err != nil {
		return ports.CourierInfo{}, err
	}

	row := r.db.WithContext(ctx).Raw(`
		SELECT name
		FROM users
		WHERE id = ? AND role = ? AND is_active
	`, id.Bytes(), courierRole).Row()

	var name string
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CourierInfo{}, errs.NewObjectNotFoundError("courier", id.String())
		}
		return ports.CourierInfo{}, err
	}

	return ports.CourierInfo{ID: id, Name: name}, nil
}

// ListActiveCouriers retrieves every active courier ordered by name.
func (r *GormCourierRegistry) ListActiveCouriers(ctx context.Context) ([]ports.CourierInfo, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM users
		WHERE role = ? AND is_active
		ORDER BY name
	`, courierRole).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]ports.CourierInfo, 0)

	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)

		if err = rows.Scan(&id, &name); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		couriers = append(couriers, ports.CourierInfo{ID: courierID, Name: name})
	}

	return couriers, rows.Err()
}
