package triangle

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FilterRank keeps candidates whose return sits inside the inclusive
// [minPct, maxPct] band and whose bottleneck liquidity clears the floor,
// then orders them by descending return. The upper bound rejects quotes
// too good to be real (stale or erroneous books). Ties keep discovery
// order.
func FilterRank(candidates []Opportunity, minPct, maxPct, minLiquidity decimal.Decimal) []Opportunity {
	kept := make([]Opportunity, 0, len(candidates))
	for _, c := range candidates {
		if c.Pct.LessThan(minPct) || c.Pct.GreaterThan(maxPct) {
			continue
		}
		if c.Liquidity.LessThan(minLiquidity) {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Pct.GreaterThan(kept[j].Pct)
	})

	return kept
}
