// Package scanner drives the triangular arbitrage pipeline: enumerate
// triangles over the static universe, fetch the three books per
// triangle, simulate the chain, filter and rank, report. One cycle is a
// full pass; the loop re-runs on a fixed interval until cancelled.
package scanner

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/web3guy0/tribot/internal/config"
	"github.com/web3guy0/tribot/internal/market"
	"github.com/web3guy0/tribot/internal/orderbook"
	"github.com/web3guy0/tribot/internal/triangle"
)

// BookProvider fetches an order book snapshot for a market. Errors are
// resolved inside the scanner to an empty book so that one exchange
// hiccup degrades a single triangle, never the scan.
type BookProvider interface {
	GetOrderBook(pair market.Pair, depth int) (orderbook.Book, error)
}

// Reporter consumes one cycle's ranked opportunities. An empty slice
// means "no opportunities this cycle" and is still reported. Reporter
// failures must stay inside the reporter; the scanner ignores them.
type Reporter interface {
	Report(opps []triangle.Opportunity)
}

// Scanner runs the scan pipeline against a read-only universe.
type Scanner struct {
	cfg       *config.Config
	universe  *market.Universe
	provider  BookProvider
	sim       triangle.Simulator
	reporters []Reporter

	triangles []triangle.Triangle // enumerated once; the universe is static
}

// New creates a scanner. The triangle set is enumerated up front since
// the universe never changes during a run.
func New(cfg *config.Config, u *market.Universe, provider BookProvider, reporters ...Reporter) *Scanner {
	tris := triangle.Enumerate(u)
	log.Info().
		Int("markets", u.MarketCount()).
		Int("triangles", len(tris)).
		Msg("🔺 Scanner ready")

	return &Scanner{
		cfg:      cfg,
		universe: u,
		provider: provider,
		sim: triangle.Simulator{
			Notional: cfg.TradeNotional,
			FeeRate:  cfg.FeeRate,
		},
		reporters: reporters,
		triangles: tris,
	}
}

// ScanOnce runs one full cycle and returns the ranked opportunities.
// The context is checked between triangles so cancellation cannot be
// stalled by a long universe.
func (s *Scanner) ScanOnce(ctx context.Context) []triangle.Opportunity {
	started := time.Now()
	candidates := make([]triangle.Opportunity, 0, 8)

	for _, tri := range s.triangles {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		book1 := s.fetchBook(tri.Leg1)
		book2 := s.fetchBook(tri.Leg2)
		book3 := s.fetchBook(tri.Leg3)

		opp, ok := s.sim.Simulate(tri, book1, book2, book3)
		if !ok {
			continue
		}

		log.Debug().
			Str("route", opp.Route).
			Str("pct", opp.Pct.StringFixed(4)).
			Msg("Triangle simulated")
		candidates = append(candidates, opp)
	}

	ranked := triangle.FilterRank(candidates,
		s.cfg.MinProfitPct, s.cfg.MaxProfitPct, s.cfg.MinLiquidity)

	log.Info().
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Dur("took", time.Since(started)).
		Msg("Scan cycle complete")

	for _, r := range s.reporters {
		r.Report(ranked)
	}

	return ranked
}

// Run repeats ScanOnce on the configured interval until ctx is
// cancelled. Cycles never overlap: the timer starts after reporting.
func (s *Scanner) Run(ctx context.Context) {
	log.Info().
		Dur("interval", s.cfg.ScanInterval).
		Msg("🔄 Scan loop started")

	for {
		s.ScanOnce(ctx)

		select {
		case <-ctx.Done():
			log.Info().Msg("Scan loop stopped")
			return
		case <-time.After(s.cfg.ScanInterval):
		}
	}
}

// fetchBook resolves a market key to a snapshot, degrading any provider
// failure to an empty book.
func (s *Scanner) fetchBook(key string) orderbook.Book {
	pair, ok := splitKey(key)
	if !ok {
		log.Warn().Str("market", key).Msg("Malformed market key")
		return orderbook.Book{}
	}

	book, err := s.provider.GetOrderBook(pair, s.cfg.BookDepth)
	if err != nil {
		log.Warn().Err(err).Str("market", key).Msg("Book fetch failed, treating as empty")
		return orderbook.Book{}
	}
	return book
}

func splitKey(key string) (market.Pair, bool) {
	base, quote, ok := strings.Cut(key, "/")
	if !ok || base == "" || quote == "" {
		return market.Pair{}, false
	}
	return market.Pair{Base: base, Quote: quote}, true
}
