// Package walletrepo persists courier wallet transactions, the target bonus
// tier reference table, and the earning reconciliation outbox.
//
// Wallet transactions are append-only. Idempotency rests on unique indexes:
// one earning per order (order_id is only set on earnings) and one target
// bonus per courier per calendar day (bonus_date is only set on bonuses).
package walletrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// TransactionDTO is the database representation of a wallet credit.
type TransactionDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_wallet_bonus_day"`
	OrderID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Type      string     `gorm:"type:varchar(16);not null"`
	Amount    float64    `gorm:"not null"`
	Meta      []byte     `gorm:"type:jsonb"`
	BonusDate *time.Time `gorm:"type:date;uniqueIndex:uq_wallet_bonus_day"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default naming to match the schema.
func (TransactionDTO) TableName() string {
	return "delivery_wallet_transactions"
}

// TargetTierDTO is the database representation of a daily target bonus tier.
// Tiers are reference data seeded by migrations and managed outside this
// service.
type TargetTierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	MinOrders   int       `gorm:"not null"`
	MaxOrders   *int
	BonusAmount float64 `gorm:"not null"`
	IsActive    bool    `gorm:"index;not null"`
}

// TableName overrides GORM's default naming to match the schema.
func (TargetTierDTO) TableName() string {
	return "delivery_target_tiers"
}

// ReconciliationTaskDTO is the database representation of a parked earning
// credit awaiting retry.
type ReconciliationTaskDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CourierID uuid.UUID `gorm:"type:uuid;not null"`
	Attempts  int       `gorm:"not null"`
	LastError string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default naming to match the schema.
func (ReconciliationTaskDTO) TableName() string {
	return "delivery_earning_reconciliation"
}

func fromDomain(t *wallet.Transaction) (TransactionDTO, error) {
	dto := TransactionDTO{
		ID:        t.ID().Bytes(),
		CourierID: t.CourierID().Bytes(),
		Type:      string(t.Type()),
		Amount:    t.Amount(),
		CreatedAt: t.CreatedAt(),
	}

	if orderID := t.OrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}

	switch {
	case t.EarningMeta() != nil:
		meta, err := json.Marshal(t.EarningMeta())
		if err != nil {
			return TransactionDTO{}, err
		}
		dto.Meta = meta

	case t.BonusMeta() != nil:
		meta, err := json.Marshal(t.BonusMeta())
		if err != nil {
			return TransactionDTO{}, err
		}
		dto.Meta = meta

		day, err := time.Parse("2006-01-02", t.BonusMeta().Date)
		if err != nil {
			return TransactionDTO{}, err
		}
		bonusDate := slot.NormalizeDate(day)
		dto.BonusDate = &bonusDate
	}

	return dto, nil
}

func toDomain(dto TransactionDTO) (*wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if convErr != nil {
			return nil, convErr
		}
		orderID = &converted
	}

	txType := wallet.TransactionType(dto.Type)

	var earning *wallet.EarningMeta
	var bonus *wallet.BonusMeta
	if len(dto.Meta) > 0 {
		switch txType {
		case wallet.TypeEarning:
			earning = &wallet.EarningMeta{}
			if err = json.Unmarshal(dto.Meta, earning); err != nil {
				return nil, err
			}
		case wallet.TypeBonus:
			bonus = &wallet.BonusMeta{}
			if err = json.Unmarshal(dto.Meta, bonus); err != nil {
				return nil, err
			}
		}
	}

	return wallet.RestoreTransaction(id, courierID, orderID, txType, dto.Amount, earning, bonus, dto.CreatedAt)
}

func tierToDomain(dto TargetTierDTO) (*wallet.TargetTier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return wallet.RestoreTargetTier(id, dto.Name, dto.MinOrders, dto.MaxOrders, dto.BonusAmount, dto.IsActive)
}

func taskFromDomain(t *wallet.ReconciliationTask) ReconciliationTaskDTO {
	return ReconciliationTaskDTO{
		ID:        t.ID().Bytes(),
		OrderID:   t.OrderID().Bytes(),
		CourierID: t.CourierID().Bytes(),
		Attempts:  t.Attempts(),
		LastError: t.LastError(),
		CreatedAt: t.CreatedAt(),
	}
}

func taskToDomain(dto ReconciliationTaskDTO) (*wallet.ReconciliationTask, error) {
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

	return wallet.RestoreReconciliationTask(id, orderID, courierID, dto.Attempts, dto.LastError, dto.CreatedAt)
}
