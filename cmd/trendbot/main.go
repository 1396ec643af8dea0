// Trendbot - MACD/OBV trend follower for a single Bybit spot pair
//
// Long-only: enters when the MACD histogram and on-balance volume both
// point up, exits on a fixed stop-loss, a trailing stop armed after the
// configured profit, or a bearish MACD flip. Every fill is journaled
// and pushed to Telegram.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/tribot/internal/bybit"
	"github.com/web3guy0/tribot/internal/config"
	"github.com/web3guy0/tribot/internal/database"
	"github.com/web3guy0/tribot/internal/market"
	"github.com/web3guy0/tribot/internal/notify"
	"github.com/web3guy0/tribot/internal/trend"
)

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	base, quote, err := cfg.TrendPair()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid trend symbol")
	}
	pair := market.Pair{Base: base, Quote: quote}

	log.Info().
		Str("symbol", pair.Key()).
		Str("interval", cfg.TrendInterval).
		Str("capital", cfg.TrendCapital.String()).
		Msg("📊 Trendbot starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := bybit.NewClient()

	// Live ticker keeps stop checks fresh between kline polls.
	ticker := bybit.NewTickerStream(pair)
	ticker.Start()
	defer ticker.Stop()

	telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Journal unavailable, running without persistence")
		db = nil
	}

	trader := trend.New(cfg, pair, client, ticker, db, telegram)

	telegram.SendMessage(fmt.Sprintf("Trendbot started on %s (%sm candles)",
		pair.Key(), cfg.TrendInterval))

	go trader.Run(ctx)
	log.Info().Msg("✅ All systems online")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Received shutdown signal")
	cancel()

	profit, pct := trader.SessionPnL()
	telegram.SendMessage(fmt.Sprintf("📊 Session PnL: %s USDT (%s%%)",
		profit.StringFixed(2), pct.StringFixed(2)))
	log.Info().Msg("👋 Goodbye!")
}
