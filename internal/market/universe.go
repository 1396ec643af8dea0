// Package market builds the static symbol universe the scanner works
// against: which markets exist on the venue and how each symbol is
// classified. The universe is computed once at start-up and treated as
// read-only for the life of the process.
package market

import (
	"fmt"
	"sort"
)

// Class is a symbol's role in triangle construction. Every symbol gets
// exactly one class.
type Class int

const (
	// Stable symbols are the quote currencies used as capital.
	Stable Class = iota
	// Base symbols are the major-coin allow-list. The class is tracked
	// for bookkeeping but does not constrain triangles beyond "not stable".
	Base
	// Alt is everything else.
	Alt
)

func (c Class) String() string {
	switch c {
	case Stable:
		return "stable"
	case Base:
		return "base"
	case Alt:
		return "alt"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Pair is one tradable market: base quoted in quote.
type Pair struct {
	Base  string
	Quote string
}

// Key returns the canonical market key, e.g. "BTC/USDT".
func (p Pair) Key() string {
	return p.Base + "/" + p.Quote
}

// Universe is the read-only symbol/market state shared by every scan
// cycle. Construct it once with Build and pass it around explicitly.
type Universe struct {
	markets map[string]bool
	classes map[string]Class

	stables []string // configured order, preserved
	coins   []string // every non-stable symbol, sorted
}

// Build classifies every symbol appearing in pairs against the
// configured stable set and base-coin allow-list.
func Build(pairs []Pair, stables, baseCoins []string) *Universe {
	stableSet := make(map[string]bool, len(stables))
	for _, s := range stables {
		stableSet[s] = true
	}
	baseSet := make(map[string]bool, len(baseCoins))
	for _, b := range baseCoins {
		baseSet[b] = true
	}

	u := &Universe{
		markets: make(map[string]bool, len(pairs)),
		classes: make(map[string]Class),
		stables: append([]string(nil), stables...),
	}

	classify := func(sym string) {
		if _, seen := u.classes[sym]; seen {
			return
		}
		switch {
		case stableSet[sym]:
			u.classes[sym] = Stable
		case baseSet[sym]:
			u.classes[sym] = Base
		default:
			u.classes[sym] = Alt
		}
	}

	for _, p := range pairs {
		u.markets[p.Key()] = true
		classify(p.Base)
		classify(p.Quote)
	}

	for sym, class := range u.classes {
		if class != Stable {
			u.coins = append(u.coins, sym)
		}
	}
	sort.Strings(u.coins)

	return u
}

// HasMarket reports whether the venue lists the given market key.
func (u *Universe) HasMarket(key string) bool {
	return u.markets[key]
}

// ClassOf returns the classification of a symbol. Unknown symbols are Alt.
func (u *Universe) ClassOf(sym string) Class {
	if c, ok := u.classes[sym]; ok {
		return c
	}
	return Alt
}

// Stables returns the configured stable symbols in configured order.
func (u *Universe) Stables() []string {
	return u.stables
}

// Coins returns every non-stable symbol seen in the market set, sorted.
func (u *Universe) Coins() []string {
	return u.coins
}

// MarketCount returns the number of listed markets.
func (u *Universe) MarketCount() int {
	return len(u.markets)
}
