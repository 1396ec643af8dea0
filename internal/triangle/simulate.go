package triangle

import (
	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/orderbook"
)

// Opportunity is a triangle whose simulated round-trip survived all
// three legs. Profit is denominated in the stable_in capital unit.
type Opportunity struct {
	Route     string
	Profit    decimal.Decimal
	Pct       decimal.Decimal
	Liquidity decimal.Decimal // bottleneck top-of-book notional across the legs
}

// Simulator chains depth-weighted fills across a triangle's three legs.
type Simulator struct {
	Notional decimal.Decimal // capital committed per triangle, in stable_in units
	FeeRate  decimal.Decimal // taker fee per leg, e.g. 0.001
}

// Simulate runs the conversion chain for one triangle. Each leg's output
// quantity becomes the next leg's input, with a proportional fee haircut
// applied per leg so fees compound across the cycle. Any leg that cannot
// fill abandons the triangle: ok=false, no Opportunity.
//
// Liquidity is the minimum top-of-book notional of the three sides used.
// It is a deliberately coarser gate than the depth-weighted fills the
// profit is built on: "is the top of book thick enough", nothing more.
func (s Simulator) Simulate(tri Triangle, book1, book2, book3 orderbook.Book) (Opportunity, bool) {
	keep := decimal.NewFromInt(1).Sub(s.FeeRate)

	// Leg 1: buy stable_out with stable_in.
	fill1, ok := orderbook.EstimateFill(book1.Asks, s.Notional)
	if !ok {
		return Opportunity{}, false
	}
	stableOut := fill1.Notional.Div(fill1.AvgPrice).Mul(keep)

	// Leg 2: buy the coin with the stable_out proceeds.
	fill2, ok := orderbook.EstimateFill(book2.Asks, stableOut)
	if !ok {
		return Opportunity{}, false
	}
	coinQty := fill2.Notional.Div(fill2.AvgPrice).Mul(keep)

	// Leg 3: sell the coin back into stable_in.
	fill3, ok := orderbook.EstimateFill(book3.Bids, coinQty)
	if !ok {
		return Opportunity{}, false
	}
	final := coinQty.Mul(fill3.AvgPrice).Mul(keep)

	profit := final.Sub(s.Notional)
	pct := profit.Div(s.Notional).Mul(decimal.NewFromInt(100))

	liq := book1.Asks.TopNotional()
	if l := book2.Asks.TopNotional(); l.LessThan(liq) {
		liq = l
	}
	if l := book3.Bids.TopNotional(); l.LessThan(liq) {
		liq = l
	}

	return Opportunity{
		Route:     tri.Route(),
		Profit:    profit,
		Pct:       pct,
		Liquidity: liq,
	}, true
}
