// Package orderbook holds order book snapshots and the depth-weighted
// fill math used by the triangle simulator.
package orderbook

import (
	"github.com/shopspring/decimal"
)

// Level is a single price level of a book side.
type Level struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Side is an ordered ladder of levels, best price first. An empty side
// means no liquidity (or a failed fetch upstream).
type Side []Level

// Book is a snapshot of both sides of a market's order book.
type Book struct {
	Asks Side
	Bids Side
}

// Empty reports whether the book carries no levels on either side.
func (b Book) Empty() bool {
	return len(b.Asks) == 0 && len(b.Bids) == 0
}

// TopNotional returns best price * best quantity, or zero for an empty side.
func (s Side) TopNotional() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s[0].Price.Mul(s[0].Quantity)
}

// Fill is the outcome of walking a book side for a target notional.
type Fill struct {
	AvgPrice decimal.Decimal // volume-weighted average execution price
	Notional decimal.Decimal // notional actually consumed, <= target
}

// EstimateFill simulates a market order walking the side level by level
// until the target notional is reached. Whole levels are consumed until
// the next one would cross the target; then only the fractional quantity
// needed to land exactly on the target is taken. If the ladder runs out
// first, the partial fill is still returned.
//
// ok is false when nothing could be consumed: empty side, or a zero or
// negative target. Callers must abandon the trade on ok=false rather
// than treat it as a zero-profit fill.
func EstimateFill(side Side, target decimal.Decimal) (Fill, bool) {
	if target.LessThanOrEqual(decimal.Zero) {
		return Fill{}, false
	}

	total := decimal.Zero
	qty := decimal.Zero

	for _, lvl := range side {
		deal := lvl.Price.Mul(lvl.Quantity)
		if total.Add(deal).GreaterThanOrEqual(target) {
			partial := target.Sub(total).Div(lvl.Price)
			qty = qty.Add(partial)
			total = total.Add(partial.Mul(lvl.Price))
			break
		}
		total = total.Add(deal)
		qty = qty.Add(lvl.Quantity)
	}

	if qty.IsZero() {
		return Fill{}, false
	}

	return Fill{
		AvgPrice: total.Div(qty),
		Notional: total,
	}, true
}
