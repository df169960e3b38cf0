// Package slotrepo persists delivery slot definitions and their per-date
// availability counters. Slot rows are reference data mutated by admins;
// availability rows are live counters mutated during checkout.
package slotrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"

	"github.com/google/uuid"
)

// SlotDTO is the database representation of a delivery slot definition.
type SlotDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	StartTime         string    `gorm:"type:varchar(5);not null"`
	EndTime           string    `gorm:"type:varchar(5);not null"`
	DefaultMaxOrders  int       `gorm:"not null"`
	DisplayOrderLimit int       `gorm:"not null"`
	HighThreshold     int       `gorm:"not null"`
	MediumThreshold   int       `gorm:"not null"`
	IsActive          bool      `gorm:"index;not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming to match the schema.
func (SlotDTO) TableName() string {
	return "delivery_slots"
}

// AvailabilityDTO is the database representation of one slot's capacity
// counter on one date. Rows are materialized lazily: a missing row means
// the slot still has its default capacity for that date.
type AvailabilityDTO struct {
	SlotID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date              time.Time `gorm:"type:date;primaryKey"`
	AvailableOrders   int       `gorm:"not null"`
	MaxOrdersOverride *int
	IsAvailable       bool `gorm:"not null"`
}

// TableName overrides GORM's default naming to match the schema.
func (AvailabilityDTO) TableName() string {
	return "delivery_slot_availability"
}

func fromDomain(s *slot.DeliverySlot) SlotDTO {
	return SlotDTO{
		ID:                s.ID().Bytes(),
		Name:              s.Name(),
		StartTime:         s.StartTime().String(),
		EndTime:           s.EndTime().String(),
		DefaultMaxOrders:  s.DefaultMaxOrders(),
		DisplayOrderLimit: s.DisplayOrderLimit(),
		HighThreshold:     s.HighThreshold(),
		MediumThreshold:   s.MediumThreshold(),
		IsActive:          s.IsActive(),
	}
}

func toDomain(dto SlotDTO) (*slot.DeliverySlot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	start, err := slot.ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := slot.ParseTimeOfDay(dto.EndTime)
	if err != nil {
		return nil, err
	}

	return slot.RestoreDeliverySlot(
		id,
		dto.Name,
		start,
		end,
		dto.DefaultMaxOrders,
		dto.DisplayOrderLimit,
		dto.HighThreshold,
		dto.MediumThreshold,
		dto.IsActive,
	)
}

func availabilityFromDomain(a slot.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		SlotID:            a.SlotID().Bytes(),
		Date:              a.Date(),
		AvailableOrders:   a.AvailableOrders(),
		MaxOrdersOverride: a.MaxOrdersOverride(),
		IsAvailable:       a.IsAvailable(),
	}
}

func availabilityToDomain(dto AvailabilityDTO) (slot.Availability, error) {
	slotID, err := kernel.UUIDFromBytes(dto.SlotID[:])
	if err != nil {
		return slot.Availability{}, err
	}

	restored, err := slot.RestoreAvailability(
		slotID,
		dto.Date,
		dto.AvailableOrders,
		dto.MaxOrdersOverride,
		dto.IsAvailable,
	)
	if err != nil {
		return slot.Availability{}, err
	}

	return *restored, nil
}
