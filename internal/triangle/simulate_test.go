package triangle

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/orderbook"
)

func deepSide(price string) orderbook.Side {
	return orderbook.Side{{
		Price:    decimal.RequireFromString(price),
		Quantity: decimal.RequireFromString("1000000"),
	}}
}

var testTriangle = Triangle{
	StableIn: "USDT", StableOut: "USDC", Coin: "SOL",
	Leg1: "USDT/USDC", Leg2: "SOL/USDT", Leg3: "SOL/USDC",
}

func TestSimulateHandComputed(t *testing.T) {
	// Single infinite-depth levels, zero fee:
	// 100 USDT -> 100 USDC at 1.0, buy 5 SOL at 20.0, sell at 20.4
	// -> 102 USDT. Profit 2, return 2%.
	sim := Simulator{
		Notional: decimal.NewFromInt(100),
		FeeRate:  decimal.Zero,
	}

	book1 := orderbook.Book{Asks: deepSide("1.0")}
	book2 := orderbook.Book{Asks: deepSide("20.0")}
	book3 := orderbook.Book{Bids: deepSide("20.4")}

	opp, ok := sim.Simulate(testTriangle, book1, book2, book3)
	if !ok {
		t.Fatal("expected an opportunity")
	}

	eps := decimal.RequireFromString("0.000001")
	if opp.Profit.Sub(decimal.NewFromInt(2)).Abs().GreaterThan(eps) {
		t.Errorf("profit = %s, want 2", opp.Profit)
	}
	if opp.Pct.Sub(decimal.NewFromInt(2)).Abs().GreaterThan(eps) {
		t.Errorf("pct = %s, want 2", opp.Pct)
	}
	if opp.Route != "USDT/USDC → SOL/USDT → SOL/USDC" {
		t.Errorf("route = %q", opp.Route)
	}
}

func TestSimulateFeesCompoundPerLeg(t *testing.T) {
	// Flat 1:1 books everywhere; the only effect is the fee haircut,
	// applied three times: final = 100 * (1-0.001)^3.
	sim := Simulator{
		Notional: decimal.NewFromInt(100),
		FeeRate:  decimal.RequireFromString("0.001"),
	}

	one := orderbook.Book{Asks: deepSide("1.0"), Bids: deepSide("1.0")}
	opp, ok := sim.Simulate(testTriangle, one, one, one)
	if !ok {
		t.Fatal("expected an opportunity")
	}

	keep := decimal.RequireFromString("0.999")
	wantFinal := decimal.NewFromInt(100).Mul(keep).Mul(keep).Mul(keep)
	wantProfit := wantFinal.Sub(decimal.NewFromInt(100))

	if opp.Profit.Sub(wantProfit).Abs().GreaterThan(decimal.RequireFromString("0.000001")) {
		t.Errorf("profit = %s, want %s", opp.Profit, wantProfit)
	}
}

func TestSimulateNoFillLegAbandonsTriangle(t *testing.T) {
	sim := Simulator{Notional: decimal.NewFromInt(100), FeeRate: decimal.Zero}

	full := orderbook.Book{Asks: deepSide("1.0"), Bids: deepSide("1.0")}
	empty := orderbook.Book{}

	tests := []struct {
		name                string
		book1, book2, book3 orderbook.Book
	}{
		{"leg1 empty", empty, full, full},
		{"leg2 empty", full, empty, full},
		{"leg3 empty", full, full, empty},
		{"leg3 asks only", full, full, orderbook.Book{Asks: deepSide("1.0")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := sim.Simulate(testTriangle, tt.book1, tt.book2, tt.book3); ok {
				t.Error("expected no opportunity")
			}
		})
	}
}

func TestSimulateBottleneckLiquidity(t *testing.T) {
	sim := Simulator{Notional: decimal.NewFromInt(100), FeeRate: decimal.Zero}

	// Top-of-book notionals: leg1 1.0*500=500, leg2 20*100=2000, leg3 20.4*10=204.
	book1 := orderbook.Book{Asks: orderbook.Side{
		{Price: decimal.RequireFromString("1.0"), Quantity: decimal.RequireFromString("500")},
	}}
	book2 := orderbook.Book{Asks: orderbook.Side{
		{Price: decimal.RequireFromString("20"), Quantity: decimal.RequireFromString("100")},
	}}
	book3 := orderbook.Book{Bids: orderbook.Side{
		{Price: decimal.RequireFromString("20.4"), Quantity: decimal.RequireFromString("10")},
	}}

	opp, ok := sim.Simulate(testTriangle, book1, book2, book3)
	if !ok {
		t.Fatal("expected an opportunity")
	}
	if want := decimal.RequireFromString("204"); !opp.Liquidity.Equal(want) {
		t.Errorf("liquidity = %s, want %s", opp.Liquidity, want)
	}
}
