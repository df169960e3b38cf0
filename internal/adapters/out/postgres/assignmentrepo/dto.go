// Package assignmentrepo persists order-to-courier assignment aggregates
// and their reassignment history trail.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the database representation of an assignment aggregate.
// The order snapshot fields are frozen at assignment time and survive
// courier handovers unchanged.
type AssignmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CourierID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Status          string    `gorm:"type:varchar(16);index;not null"`
	Priority        string    `gorm:"type:varchar(8);not null"`
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	TotalAmount     float64
	ItemsCount      int
	PhotoURL        *string
	Latitude        *float64
	Longitude       *float64
	DeliveredAt     *time.Time `gorm:"index"`
	CancelledAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming to match the schema.
func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

// HistoryDTO is the database representation of one reassignment. The row
// records who the order moved from and to; old_courier_id is null only for
// rows imported before the trail existed.
type HistoryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	OldCourierID *uuid.UUID `gorm:"type:uuid"`
	NewCourierID uuid.UUID  `gorm:"type:uuid;not null"`
	Reason       string     `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default naming to match the schema.
func (HistoryDTO) TableName() string {
	return "delivery_assignment_history"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	snapshot := a.Snapshot()

	var latitude, longitude *float64
	if loc := a.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		latitude, longitude = &lat, &lng
	}

	return AssignmentDTO{
		ID:              a.ID().Bytes(),
		OrderID:         a.OrderID().Bytes(),
		CourierID:       a.CourierID().Bytes(),
		Status:          a.Status().String(),
		Priority:        a.Priority().String(),
		CustomerName:    snapshot.CustomerName(),
		CustomerPhone:   snapshot.CustomerPhone(),
		DeliveryAddress: snapshot.DeliveryAddress(),
		TotalAmount:     snapshot.TotalAmount(),
		ItemsCount:      snapshot.ItemsCount(),
		PhotoURL:        a.PhotoURL(),
		Latitude:        latitude,
		Longitude:       longitude,
		DeliveredAt:     a.DeliveredAt(),
		CancelledAt:     a.CancelledAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := assignment.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	snapshot, err := assignment.NewOrderSnapshot(
		dto.CustomerName,
		dto.CustomerPhone,
		dto.DeliveryAddress,
		dto.TotalAmount,
		dto.ItemsCount,
	)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		location = &point
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		courierID,
		status,
		priority,
		snapshot,
		dto.PhotoURL,
		location,
		dto.DeliveredAt,
		dto.CancelledAt,
	)
}

func historyFromDomain(e *assignment.HistoryEntry) HistoryDTO {
	var oldCourierID *uuid.UUID
	if id := e.OldCourierID(); id != nil {
		raw := id.Bytes()
		oldCourierID = &raw
	}

	return HistoryDTO{
		ID:           e.ID().Bytes(),
		OrderID:      e.OrderID().Bytes(),
		OldCourierID: oldCourierID,
		NewCourierID: e.NewCourierID().Bytes(),
		Reason:       e.Reason(),
		CreatedAt:    e.CreatedAt(),
	}
}
