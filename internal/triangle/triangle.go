// Package triangle is the core of the scanner: enumerating candidate
// three-leg cycles, simulating the conversion chain against live order
// books, and filtering/ranking the survivors.
package triangle

import (
	"fmt"

	"github.com/web3guy0/tribot/internal/market"
)

// Triangle is one candidate cycle: swap stable_in into stable_out, buy
// the coin with the proceeds, sell the coin back into stable_in.
type Triangle struct {
	StableIn  string
	StableOut string
	Coin      string

	// Market keys for the three legs, in execution order.
	Leg1 string // STABLE_IN/STABLE_OUT, taken at ask
	Leg2 string // COIN/STABLE_IN, taken at ask
	Leg3 string // COIN/STABLE_OUT, taken at bid
}

// Route renders the cycle as a human-readable label.
func (t Triangle) Route() string {
	return fmt.Sprintf("%s → %s → %s", t.Leg1, t.Leg2, t.Leg3)
}

// Enumerate yields every structurally valid triangle over the universe:
// ordered pairs of distinct stables around each non-stable coin, kept
// only when all three market keys actually exist on the venue. The
// order is deterministic: stable_in outer, coin middle, stable_out
// inner, following the universe's stable and coin ordering.
func Enumerate(u *market.Universe) []Triangle {
	var out []Triangle
	for _, stableIn := range u.Stables() {
		for _, coin := range u.Coins() {
			for _, stableOut := range u.Stables() {
				if stableIn == stableOut {
					continue
				}

				leg1 := stableIn + "/" + stableOut
				leg2 := coin + "/" + stableIn
				leg3 := coin + "/" + stableOut

				if !u.HasMarket(leg1) || !u.HasMarket(leg2) || !u.HasMarket(leg3) {
					continue
				}

				out = append(out, Triangle{
					StableIn:  stableIn,
					StableOut: stableOut,
					Coin:      coin,
					Leg1:      leg1,
					Leg2:      leg2,
					Leg3:      leg3,
				})
			}
		}
	}
	return out
}
