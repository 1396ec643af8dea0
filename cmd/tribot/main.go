// Tribot - Triangular Arbitrage Scanner for Bybit spot
//
// The scanner simulates three-leg conversion chains over pairs of
// stablecoins and every listed coin:
// 1. Swap stable_in into stable_out
// 2. Buy the coin with the proceeds
// 3. Sell the coin back into stable_in
// Each leg walks the live order book for a depth-weighted price and
// takes a taker-fee haircut. Routes inside the profit band with enough
// top-of-book liquidity are ranked and pushed to console and Telegram.
package main

import (
	"context"
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
	"github.com/web3guy0/tribot/internal/report"
	"github.com/web3guy0/tribot/internal/scanner"
)

const version = "1.0.0"

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

	log.Info().
		Str("version", version).
		Strs("stables", cfg.Stables).
		Str("notional", cfg.TradeNotional.String()).
		Dur("interval", cfg.ScanInterval).
		Msg("🔺 Tribot starting...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Exchange client and the one-time market universe load
	client := bybit.NewClient()
	pairs, err := client.GetInstruments()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load market universe")
	}
	universe := market.Build(pairs, cfg.Stables, cfg.BaseCoins)
	log.Info().
		Int("markets", universe.MarketCount()).
		Int("coins", len(universe.Coins())).
		Msg("📈 Market universe loaded")

	// Reporting sinks
	reporters := []scanner.Reporter{report.NewConsole(cfg.TopRoutes)}

	telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, cfg.TopRoutes)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram")
	}
	if telegram != nil {
		reporters = append(reporters, telegram)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Journal unavailable, running without persistence")
	} else {
		reporters = append(reporters, database.NewRecorder(db))
	}

	s := scanner.New(cfg, universe, client, reporters...)

	go s.Run(ctx)
	log.Info().Msg("✅ All systems online")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Received shutdown signal")
	cancel()
	log.Info().Msg("👋 Goodbye!")
}
