// Package trend implements the MACD/OBV trend-following position
// manager: one symbol, long-only, with a fixed stop-loss and a
// high-water-mark trailing stop.
package trend

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/bybit"
	"github.com/web3guy0/tribot/internal/config"
	"github.com/web3guy0/tribot/internal/database"
	"github.com/web3guy0/tribot/internal/indicators"
	"github.com/web3guy0/tribot/internal/market"
	"github.com/web3guy0/tribot/internal/notify"
)

// KlineSource feeds the trader candles. Satisfied by *bybit.Client.
type KlineSource interface {
	GetKlines(pair market.Pair, interval string, limit int) ([]bybit.Kline, error)
}

// PriceSource supplies a live last price between kline polls. Satisfied
// by *bybit.TickerStream; may be nil, in which case the last close is
// used.
type PriceSource interface {
	LastPrice() decimal.Decimal
}

// Position is the single open long, nil when flat.
type Position struct {
	EntryPrice decimal.Decimal
	Quantity   decimal.Decimal
	HighWater  decimal.Decimal // highest price seen since entry
	OpenedAt   time.Time
}

// Action is one trading decision produced by a tick.
type Action struct {
	Type   string // "buy" or "sell"
	Reason string
	Qty    decimal.Decimal
	Price  decimal.Decimal
}

// Trader holds the position state machine and its session bookkeeping.
type Trader struct {
	cfg  *config.Config
	pair market.Pair

	source KlineSource
	ticker PriceSource
	db     *database.Database
	tg     *notify.Telegram

	position *Position

	// Session PnL, notional sums of fills.
	bought decimal.Decimal
	sold   decimal.Decimal
}

// New creates a trader. db and tg may be nil; ticker may be nil.
func New(cfg *config.Config, pair market.Pair, source KlineSource, ticker PriceSource, db *database.Database, tg *notify.Telegram) *Trader {
	return &Trader{
		cfg:    cfg,
		pair:   pair,
		source: source,
		ticker: ticker,
		db:     db,
		tg:     tg,
		bought: decimal.Zero,
		sold:   decimal.Zero,
	}
}

// Position returns the open position, nil when flat.
func (t *Trader) Position() *Position {
	return t.position
}

// SessionPnL returns the session profit in quote units and as a
// percentage of the configured capital.
func (t *Trader) SessionPnL() (profit, pct decimal.Decimal) {
	profit = t.sold.Sub(t.bought)
	if t.cfg.TrendCapital.IsZero() {
		return profit, decimal.Zero
	}
	pct = profit.Div(t.cfg.TrendCapital).Mul(decimal.NewFromInt(100))
	return profit, pct
}

// Step advances the state machine by one tick: closes and volumes are
// the candle history oldest-first, price is the price the decision is
// executed against. Returns the action taken, or nil when holding.
//
// Exit priority: stop-loss, then trailing stop, then bearish MACD.
func (t *Trader) Step(closes, volumes []float64, price decimal.Decimal) *Action {
	if price.LessThanOrEqual(decimal.Zero) || len(closes) == 0 {
		return nil
	}

	macdDiff := indicators.MACDDiff(closes)
	obvDiff := indicators.OBVDiff(closes, volumes)

	if t.position == nil {
		if macdDiff > 0 && obvDiff > 0 {
			return t.open(price)
		}
		return nil
	}

	pos := t.position
	if price.GreaterThan(pos.HighWater) {
		pos.HighWater = price
	}

	hundred := decimal.NewFromInt(100)
	stopPrice := pos.EntryPrice.Mul(decimal.NewFromInt(1).Add(t.cfg.StopLossPct.Div(hundred)))
	armPrice := pos.EntryPrice.Mul(decimal.NewFromInt(1).Add(t.cfg.TrailStartPct.Div(hundred)))
	trailPrice := pos.HighWater.Mul(decimal.NewFromInt(1).Sub(t.cfg.TrailGapPct.Div(hundred)))

	switch {
	case price.LessThanOrEqual(stopPrice):
		return t.close(price, "stop loss")
	case pos.HighWater.GreaterThanOrEqual(armPrice) && price.LessThanOrEqual(trailPrice):
		return t.close(price, "trailing stop")
	case macdDiff < 0:
		return t.close(price, "macd bearish")
	}

	return nil
}

func (t *Trader) open(price decimal.Decimal) *Action {
	qty := t.cfg.TrendCapital.Div(price)
	t.position = &Position{
		EntryPrice: price,
		Quantity:   qty,
		HighWater:  price,
		OpenedAt:   time.Now(),
	}
	t.bought = t.bought.Add(qty.Mul(price))

	act := &Action{Type: "buy", Reason: "macd+obv bullish", Qty: qty, Price: price}
	t.record(act)
	return act
}

func (t *Trader) close(price decimal.Decimal, reason string) *Action {
	qty := t.position.Quantity
	t.sold = t.sold.Add(qty.Mul(price))
	t.position = nil

	act := &Action{Type: "sell", Reason: reason, Qty: qty, Price: price}
	t.record(act)
	return act
}

func (t *Trader) record(act *Action) {
	log.Info().
		Str("action", act.Type).
		Str("qty", act.Qty.StringFixed(4)).
		Str("price", act.Price.StringFixed(4)).
		Str("reason", act.Reason).
		Msg("💰 Trade")

	if t.db != nil {
		err := t.db.SaveTrade(&database.Trade{
			Symbol:   t.pair.Key(),
			Action:   act.Type,
			Quantity: act.Qty,
			Price:    act.Price,
			Reason:   act.Reason,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to journal trade")
		}
	}

	t.tg.SendTrade(act.Type, act.Qty, act.Price, t.pair.Key(), act.Reason)
}

// Run polls klines on the configured interval until ctx is cancelled.
// A failed cycle logs and backs off; it never ends the loop.
func (t *Trader) Run(ctx context.Context) {
	log.Info().
		Str("symbol", t.pair.Key()).
		Str("interval", t.cfg.TrendInterval).
		Dur("poll", t.cfg.TrendPollEvery).
		Msg("📊 Trend trader started")

	for {
		wait := t.cfg.TrendPollEvery
		if err := t.tick(); err != nil {
			log.Error().Err(err).Msg("Trend cycle failed")
			wait = t.cfg.TrendRetryAfter
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Trend trader stopped")
			return
		case <-time.After(wait):
		}
	}
}

func (t *Trader) tick() error {
	klines, err := t.source.GetKlines(t.pair, t.cfg.TrendInterval, 100)
	if err != nil {
		return err
	}
	if len(klines) == 0 {
		return nil
	}

	closes := make([]float64, len(klines))
	volumes := make([]float64, len(klines))
	for i, k := range klines {
		closes[i], _ = k.Close.Float64()
		volumes[i], _ = k.Volume.Float64()
	}

	price := klines[len(klines)-1].Close
	if t.ticker != nil {
		if live := t.ticker.LastPrice(); !live.IsZero() {
			price = live
		}
	}

	t.Step(closes, volumes, price)

	profit, pct := t.SessionPnL()
	log.Info().
		Str("profit", profit.StringFixed(2)).
		Str("pct", pct.StringFixed(2)).
		Bool("in_position", t.position != nil).
		Msg("Session PnL")

	return nil
}
