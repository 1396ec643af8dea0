package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/triangle"
)

func TestConsoleReportsNoOpportunities(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf, 10).Report(nil)

	if !strings.Contains(buf.String(), "No opportunities found.") {
		t.Errorf("empty cycle not reported explicitly:\n%s", buf.String())
	}
}

func TestConsoleRendersRankedRoutes(t *testing.T) {
	opps := []triangle.Opportunity{
		{
			Route:     "USDT/USDC → SOL/USDT → SOL/USDC",
			Profit:    decimal.RequireFromString("2.04"),
			Pct:       decimal.RequireFromString("2.04"),
			Liquidity: decimal.RequireFromString("512"),
		},
		{
			Route:     "USDC/USDT → BTC/USDC → BTC/USDT",
			Profit:    decimal.RequireFromString("0.90"),
			Pct:       decimal.RequireFromString("0.90"),
			Liquidity: decimal.RequireFromString("10000"),
		},
	}

	var buf bytes.Buffer
	NewConsoleWriter(&buf, 10).Report(opps)
	out := buf.String()

	if !strings.Contains(out, "1. USDT/USDC → SOL/USDT → SOL/USDC") {
		t.Errorf("first route missing:\n%s", out)
	}
	if !strings.Contains(out, "profit 2.04 USDT") || !strings.Contains(out, "liquidity 512 USDT") {
		t.Errorf("numbers missing:\n%s", out)
	}
}

func TestConsoleTruncatesToTopN(t *testing.T) {
	opps := make([]triangle.Opportunity, 5)
	for i := range opps {
		opps[i] = triangle.Opportunity{Route: "r", Profit: decimal.Zero, Pct: decimal.Zero, Liquidity: decimal.Zero}
	}

	var buf bytes.Buffer
	NewConsoleWriter(&buf, 3).Report(opps)

	if !strings.Contains(buf.String(), "Top 3 routes:") {
		t.Errorf("expected top-3 truncation:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "4. ") {
		t.Errorf("rendered more than 3 routes:\n%s", buf.String())
	}
}
