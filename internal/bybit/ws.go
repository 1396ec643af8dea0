package bybit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/market"
)

// TickerStream follows the public ticker channel for one pair and keeps
// the latest traded price in memory. The trend bot reads it between
// kline polls so stop checks see fresh prices.
type TickerStream struct {
	wsURL  string
	symbol string

	mu        sync.RWMutex
	lastPrice decimal.Decimal

	conn    *websocket.Conn
	running bool
	stopCh  chan struct{}
}

// NewTickerStream creates a stream for the given pair. Call Start to
// connect.
func NewTickerStream(pair market.Pair) *TickerStream {
	return &TickerStream{
		wsURL:  defaultWSURL,
		symbol: pair.Base + pair.Quote,
		stopCh: make(chan struct{}),
	}
}

// Start connects and begins reading in the background, reconnecting on
// read failures until Stop is called.
func (t *TickerStream) Start() {
	t.running = true
	go t.run()
	log.Info().Str("symbol", t.symbol).Msg("📡 Ticker stream started")
}

// Stop closes the connection and ends the read loop.
func (t *TickerStream) Stop() {
	t.running = false
	close(t.stopCh)
	if t.conn != nil {
		t.conn.Close()
	}
}

// LastPrice returns the most recent traded price, zero before the first
// tick arrives.
func (t *TickerStream) LastPrice() decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastPrice
}

func (t *TickerStream) run() {
	for t.running {
		if err := t.connect(); err != nil {
			log.Error().Err(err).Msg("Ticker stream connect failed")
			select {
			case <-time.After(5 * time.Second):
			case <-t.stopCh:
				return
			}
			continue
		}

		t.readMessages()

		if t.running {
			log.Warn().Str("symbol", t.symbol).Msg("Ticker stream disconnected, reconnecting...")
			time.Sleep(time.Second)
		}
	}
}

func (t *TickerStream) connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(t.wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	t.conn = conn

	sub := map[string]interface{}{
		"op":   "subscribe",
		"args": []string{"tickers." + t.symbol},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return fmt.Errorf("subscribe failed: %w", err)
	}

	log.Info().Str("symbol", t.symbol).Msg("🔌 WebSocket connected to Bybit")
	return nil
}

func (t *TickerStream) readMessages() {
	for t.running {
		_, message, err := t.conn.ReadMessage()
		if err != nil {
			if t.running {
				log.Error().Err(err).Msg("WebSocket read error")
			}
			return
		}
		t.handleMessage(message)
	}
}

func (t *TickerStream) handleMessage(data []byte) {
	var msg struct {
		Topic string `json:"topic"`
		Data  struct {
			LastPrice string `json:"lastPrice"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Data.LastPrice == "" {
		return
	}

	price := ParseDecimal(msg.Data.LastPrice)
	if price.IsZero() {
		return
	}

	t.mu.Lock()
	t.lastPrice = price
	t.mu.Unlock()
}
