// Package config loads all runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for both bots.
type Config struct {
	// Telegram
	TelegramToken  string
	TelegramChatID int64

	// Mode
	Debug bool

	// Scanner settings
	TradeNotional decimal.Decimal // capital simulated per triangle, in stable units
	FeeRate       decimal.Decimal // taker fee per leg
	MinProfitPct  decimal.Decimal // inclusive lower bound
	MaxProfitPct  decimal.Decimal // inclusive upper bound; rejects stale-quote outliers
	MinLiquidity  decimal.Decimal // bottleneck top-of-book floor
	ScanInterval  time.Duration
	BookDepth     int
	TopRoutes     int // how many ranked routes to render/notify per cycle

	// Symbol classification
	Stables   []string
	BaseCoins []string

	// Trend bot settings
	TrendSymbol     string // e.g. "SOL/USDT"
	TrendInterval   string // Bybit kline interval, e.g. "15"
	TrendCapital    decimal.Decimal
	StopLossPct     decimal.Decimal // negative, e.g. -1
	TrailStartPct   decimal.Decimal // profit % that arms the trailing stop
	TrailGapPct     decimal.Decimal // distance below the high-water mark
	TrendPollEvery  time.Duration
	TrendRetryAfter time.Duration // backoff after a failed cycle

	// Database
	DatabasePath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		Debug: getEnvBool("DEBUG", false),

		TradeNotional: getEnvDecimal("TRADE_NOTIONAL", decimal.NewFromInt(100)),
		FeeRate:       getEnvDecimal("FEE_RATE", decimal.NewFromFloat(0.001)),
		MinProfitPct:  getEnvDecimal("MIN_PROFIT_PCT", decimal.NewFromFloat(0.5)),
		MaxProfitPct:  getEnvDecimal("MAX_PROFIT_PCT", decimal.NewFromFloat(10.0)),
		MinLiquidity:  getEnvDecimal("MIN_LIQUIDITY", decimal.NewFromInt(100)),
		ScanInterval:  getEnvDuration("SCAN_INTERVAL", 10*time.Second),
		BookDepth:     getEnvInt("BOOK_DEPTH", 50),
		TopRoutes:     getEnvInt("TOP_ROUTES", 10),

		Stables:   getEnvList("STABLE_COINS", []string{"USDT", "USDC"}),
		BaseCoins: getEnvList("BASE_COINS", []string{"BTC", "ETH", "BNB", "SOL"}),

		TrendSymbol:     getEnv("TREND_SYMBOL", "SOL/USDT"),
		TrendInterval:   getEnv("TREND_INTERVAL", "15"),
		TrendCapital:    getEnvDecimal("TREND_CAPITAL", decimal.NewFromInt(20)),
		StopLossPct:     getEnvDecimal("STOP_LOSS_PCT", decimal.NewFromInt(-1)),
		TrailStartPct:   getEnvDecimal("TRAIL_START_PCT", decimal.NewFromInt(2)),
		TrailGapPct:     getEnvDecimal("TRAIL_GAP_PCT", decimal.NewFromInt(1)),
		TrendPollEvery:  getEnvDuration("TREND_POLL_INTERVAL", 5*time.Minute),
		TrendRetryAfter: getEnvDuration("TREND_RETRY_AFTER", time.Minute),

		DatabasePath: getEnv("DATABASE_PATH", "data/tribot.db"),
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.MinProfitPct.GreaterThan(cfg.MaxProfitPct) {
		return nil, fmt.Errorf("MIN_PROFIT_PCT %s exceeds MAX_PROFIT_PCT %s",
			cfg.MinProfitPct, cfg.MaxProfitPct)
	}
	if len(cfg.Stables) < 2 {
		return nil, fmt.Errorf("at least two stable coins required, got %v", cfg.Stables)
	}

	return cfg, nil
}

// TrendPair splits TrendSymbol into a base/quote pair.
func (c *Config) TrendPair() (base, quote string, err error) {
	parts := strings.Split(c.TrendSymbol, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid TREND_SYMBOL %q, want BASE/QUOTE", c.TrendSymbol)
	}
	return parts[0], parts[1], nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
