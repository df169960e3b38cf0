package wallet

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrTransactionIsNotConstructed is returned when a Transaction instance was
// not created through one of the package constructors.
var ErrTransactionIsNotConstructed = errors.New(
	"Transaction must be created via NewEarningTransaction, NewTargetBonusTransaction, or RestoreTransaction")

// TransactionType discriminates wallet credits.
type TransactionType string

const (
	// TypeEarning is the per-delivered-order compensation credit.
	// At most one earning exists per order (unique constraint in storage).
	TypeEarning TransactionType = "earning"

	// TypeBonus is an additional credit, currently only the daily target
	// bonus. At most one target bonus exists per courier per calendar day.
	TypeBonus TransactionType = "bonus"
)

// Validate checks the type is one of the defined values.
func (t TransactionType) Validate() error {
	switch t {
	case TypeEarning, TypeBonus:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"transactionType", fmt.Errorf("%q is not a known transaction type", string(t)))
	}
}

// BonusTypeTarget marks daily target bonuses in transaction metadata.
const BonusTypeTarget = "target"

// EarningMeta is the structured breakdown stored with an earning credit.
type EarningMeta struct {
	BaseFee           float64 `json:"baseFee"`
	PercentFee        float64 `json:"percentFee"`
	Percentage        float64 `json:"percentage"`
	DistanceIncentive float64 `json:"distanceIncentive"`
	OrderTotal        float64 `json:"orderTotal"`
}

// BonusMeta is the structured detail stored with a target bonus credit.
type BonusMeta struct {
	BonusType      string  `json:"bonusType"`
	TierID         string  `json:"tierId"`
	TierName       string  `json:"tierName"`
	MinOrders      int     `json:"minOrders"`
	MaxOrders      *int    `json:"maxOrders"`
	CompletedCount int     `json:"completedCount"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
}

// Transaction is a single append-only wallet credit for a courier.
// Transactions are never updated or deleted; idempotency is enforced by
// storage-level unique constraints, not by pre-checks.
type Transaction struct {
	id        kernel.UUID
	courierID kernel.UUID
	orderID   *kernel.UUID // nil for bonuses
	txType    TransactionType
	amount    float64
	earning   *EarningMeta
	bonus     *BonusMeta
	createdAt time.Time

	isConstructed bool
}

// NewEarningTransaction creates the earning credit for a delivered order.
func NewEarningTransaction(
	id, courierID, orderID kernel.UUID,
	amount float64,
	meta EarningMeta,
	createdAt time.Time,
) (*Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		orderID:       &orderID,
		txType:        TypeEarning,
		earning:       &meta,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setCourierID(courierID),
		tx.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// NewTargetBonusTransaction creates a daily target bonus credit.
func NewTargetBonusTransaction(
	id, courierID kernel.UUID,
	amount float64,
	meta BonusMeta,
	createdAt time.Time,
) (*Transaction, error) {
	if meta.BonusType != BonusTypeTarget {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"bonusType", fmt.Errorf("%q is not a known bonus type", meta.BonusType))
	}

	tx := &Transaction{
		txType:        TypeBonus,
		bonus:         &meta,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setCourierID(courierID),
		tx.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// RestoreTransaction reconstructs a Transaction from persistence.
func RestoreTransaction(
	id, courierID kernel.UUID,
	orderID *kernel.UUID,
	txType TransactionType,
	amount float64,
	earning *EarningMeta,
	bonus *BonusMeta,
	createdAt time.Time,
) (*Transaction, error) {
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	tx := &Transaction{
		orderID:       orderID,
		txType:        txType,
		earning:       earning,
		bonus:         bonus,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setCourierID(courierID),
		tx.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate ensures the Transaction was created through a constructor.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// CourierID returns the credited courier.
func (t *Transaction) CourierID() kernel.UUID {
	return t.courierID
}

// OrderID returns the order an earning is tied to, nil for bonuses.
func (t *Transaction) OrderID() *kernel.UUID {
	return t.orderID
}

// Type returns the transaction type.
func (t *Transaction) Type() TransactionType {
	return t.txType
}

// Amount returns the credited amount.
func (t *Transaction) Amount() float64 {
	return t.amount
}

// EarningMeta returns the earning breakdown, nil for bonuses.
func (t *Transaction) EarningMeta() *EarningMeta {
	return t.earning
}

// BonusMeta returns the bonus detail, nil for earnings.
func (t *Transaction) BonusMeta() *BonusMeta {
	return t.bonus
}

// CreatedAt returns when the credit was recorded.
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	t.courierID = courierID
	return nil
}

func (t *Transaction) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%f is negative", amount))
	}
	t.amount = amount
	return nil
}
