package services

import (
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"
)

// DistanceIncentive computes the distance-based component of a delivery
// earning. The production formula is not defined yet, so the ledger ships
// with ZeroDistanceIncentive; a real implementation can be plugged in
// without touching the calculator.
type DistanceIncentive interface {
	// Incentive returns the distance component for a delivered assignment.
	Incentive(a *assignment.Assignment) float64
}

// ZeroDistanceIncentive is the placeholder strategy: every delivery gets a
// zero distance component.
type ZeroDistanceIncentive struct{}

// Incentive always returns 0.
func (ZeroDistanceIncentive) Incentive(_ *assignment.Assignment) float64 {
	return 0
}

// EarningsCalculator is a domain service computing the wallet credit for a
// delivered order:
//
//	totalEarning = baseFee + orderTotal*percentage + distanceIncentive
//
// baseFee and percentage come from configuration; the distance component
// from the injected strategy.
type EarningsCalculator struct {
	baseFee    float64
	percentage float64
	incentive  DistanceIncentive
}

// NewEarningsCalculator creates a calculator with the given fee structure.
// percentage is a fraction (0.05 for 5%). A nil incentive defaults to
// ZeroDistanceIncentive.
func NewEarningsCalculator(baseFee, percentage float64, incentive DistanceIncentive) (EarningsCalculator, error) {
	if baseFee < 0 {
		return EarningsCalculator{}, errs.NewValueIsInvalidError("baseFee")
	}
	if percentage < 0 || percentage > 1 {
		return EarningsCalculator{}, errs.NewValueIsOutOfRangeError("percentage", percentage, 0, 1)
	}
	if incentive == nil {
		incentive = ZeroDistanceIncentive{}
	}

	return EarningsCalculator{
		baseFee:    baseFee,
		percentage: percentage,
		incentive:  incentive,
	}, nil
}

// Calculate computes the earning for a delivered assignment against its
// frozen order snapshot and returns the amount with its stored breakdown.
func (c EarningsCalculator) Calculate(a *assignment.Assignment) (float64, wallet.EarningMeta, error) {
	if err := a.Validate(); err != nil {
		return 0, wallet.EarningMeta{}, err
	}

	orderTotal := a.Snapshot().TotalAmount()
	percentFee := orderTotal * c.percentage
	distanceIncentive := c.incentive.Incentive(a)

	meta := wallet.EarningMeta{
		BaseFee:           c.baseFee,
		PercentFee:        percentFee,
		Percentage:        c.percentage,
		DistanceIncentive: distanceIncentive,
		OrderTotal:        orderTotal,
	}

	return c.baseFee + percentFee + distanceIncentive, meta, nil
}
