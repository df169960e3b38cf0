package wallet

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrTierIsNotConstructed is returned when a TargetTier was not created
// through NewTargetTier or RestoreTargetTier.
var ErrTierIsNotConstructed = errors.New(
	"TargetTier must be created via NewTargetTier or RestoreTargetTier constructor")

// TargetTier is one row of the daily target bonus reference table: couriers
// completing between minOrders and maxOrders deliveries in a day earn
// bonusAmount. A nil maxOrders means open-ended. The table is read-only at
// runtime; tiers are expected to define non-overlapping ranges.
type TargetTier struct {
	id          kernel.UUID
	name        string
	minOrders   int
	maxOrders   *int
	bonusAmount float64
	isActive    bool

	isConstructed bool
}

// NewTargetTier creates a validated, active tier.
func NewTargetTier(
	id kernel.UUID,
	name string,
	minOrders int,
	maxOrders *int,
	bonusAmount float64,
) (*TargetTier, error) {
	return newTier(id, name, minOrders, maxOrders, bonusAmount, true)
}

// RestoreTargetTier reconstructs a tier from persistence.
func RestoreTargetTier(
	id kernel.UUID,
	name string,
	minOrders int,
	maxOrders *int,
	bonusAmount float64,
	isActive bool,
) (*TargetTier, error) {
	return newTier(id, name, minOrders, maxOrders, bonusAmount, isActive)
}

func newTier(
	id kernel.UUID,
	name string,
	minOrders int,
	maxOrders *int,
	bonusAmount float64,
	isActive bool,
) (*TargetTier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if minOrders <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"minOrders", fmt.Errorf("%d is not greater than 0", minOrders))
	}
	if maxOrders != nil && *maxOrders < minOrders {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"maxOrders", fmt.Errorf("%d is below min orders %d", *maxOrders, minOrders))
	}
	if bonusAmount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"bonusAmount", fmt.Errorf("%f is negative", bonusAmount))
	}

	return &TargetTier{
		id:            id,
		name:          name,
		minOrders:     minOrders,
		maxOrders:     maxOrders,
		bonusAmount:   bonusAmount,
		isActive:      isActive,
		isConstructed: true,
	}, nil
}

// Validate ensures the tier was created through a constructor.
func (t *TargetTier) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTierIsNotConstructed
	}
	return nil
}

// ID returns the tier's unique identifier.
func (t *TargetTier) ID() kernel.UUID {
	return t.id
}

// Name returns the tier's display name.
func (t *TargetTier) Name() string {
	return t.name
}

// MinOrders returns the inclusive lower bound of completed deliveries.
func (t *TargetTier) MinOrders() int {
	return t.minOrders
}

// MaxOrders returns the inclusive upper bound, nil for open-ended tiers.
func (t *TargetTier) MaxOrders() *int {
	return t.maxOrders
}

// BonusAmount returns the wallet credit for reaching this tier.
func (t *TargetTier) BonusAmount() float64 {
	return t.bonusAmount
}

// IsActive reports whether the tier participates in bonus evaluation.
func (t *TargetTier) IsActive() bool {
	return t.isActive
}

// Matches reports whether completedCount falls within the tier's range.
func (t *TargetTier) Matches(completedCount int) bool {
	if completedCount < t.minOrders {
		return false
	}
	return t.maxOrders == nil || completedCount <= *t.maxOrders
}
