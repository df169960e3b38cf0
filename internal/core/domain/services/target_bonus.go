package services

import (
	"sort"

	"dispatch/internal/core/domain/model/wallet"
)

// SelectTargetTier picks the bonus tier a courier qualifies for with
// completedCount deliveries on the current day.
//
// Selection rules:
//   - inactive and zero-amount tiers never qualify
//   - tiers are considered by min_orders descending, so when ranges overlap
//     the highest qualifying tier wins
//   - a tier qualifies when completedCount is within [min_orders, max_orders],
//     max_orders nil meaning open-ended
//
// Returns nil when no tier qualifies.
func SelectTargetTier(tiers []*wallet.TargetTier, completedCount int) *wallet.TargetTier {
	candidates := make([]*wallet.TargetTier, 0, len(tiers))
	for _, tier := range tiers {
		if tier != nil && tier.IsActive() && tier.BonusAmount() > 0 {
			candidates = append(candidates, tier)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MinOrders() > candidates[j].MinOrders()
	})

	for _, tier := range candidates {
		if tier.Matches(completedCount) {
			return tier
		}
	}

	return nil
}
