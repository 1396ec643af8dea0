package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.TradeNotional.Equal(decimal.NewFromInt(100)) {
		t.Errorf("TradeNotional = %s, want 100", cfg.TradeNotional)
	}
	if !cfg.FeeRate.Equal(decimal.NewFromFloat(0.001)) {
		t.Errorf("FeeRate = %s, want 0.001", cfg.FeeRate)
	}
	if cfg.ScanInterval != 10*time.Second {
		t.Errorf("ScanInterval = %s, want 10s", cfg.ScanInterval)
	}
	if len(cfg.Stables) != 2 || cfg.Stables[0] != "USDT" || cfg.Stables[1] != "USDC" {
		t.Errorf("Stables = %v", cfg.Stables)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_PROFIT_PCT", "1.25")
	t.Setenv("STABLE_COINS", "usdt, dai ,usdc")
	t.Setenv("SCAN_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.MinProfitPct.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("MinProfitPct = %s", cfg.MinProfitPct)
	}
	want := []string{"USDT", "DAI", "USDC"}
	for i, s := range want {
		if cfg.Stables[i] != s {
			t.Errorf("Stables[%d] = %s, want %s", i, cfg.Stables[i], s)
		}
	}
	if cfg.ScanInterval != 30*time.Second {
		t.Errorf("ScanInterval = %s, want 30s", cfg.ScanInterval)
	}
}

func TestLoadRejectsInvertedProfitBand(t *testing.T) {
	t.Setenv("MIN_PROFIT_PCT", "5")
	t.Setenv("MAX_PROFIT_PCT", "1")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for min > max")
	}
}

func TestLoadRejectsSingleStable(t *testing.T) {
	t.Setenv("STABLE_COINS", "USDT")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for fewer than two stables")
	}
}

func TestTrendPair(t *testing.T) {
	cfg := &Config{TrendSymbol: "SOL/USDT"}
	base, quote, err := cfg.TrendPair()
	if err != nil {
		t.Fatalf("TrendPair: %v", err)
	}
	if base != "SOL" || quote != "USDT" {
		t.Errorf("pair = %s/%s", base, quote)
	}

	cfg.TrendSymbol = "SOLUSDT"
	if _, _, err := cfg.TrendPair(); err == nil {
		t.Error("expected an error for missing separator")
	}
}

func TestLoadBadChatID(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for invalid chat id")
	}
}
