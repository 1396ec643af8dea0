// Package bybit is a thin client for the Bybit v5 public spot API:
// instrument listing, order book snapshots and klines over REST, plus a
// ticker WebSocket stream for live last prices.
package bybit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/market"
	"github.com/web3guy0/tribot/internal/orderbook"
)

const (
	defaultRESTURL = "https://api.bybit.com"
	defaultWSURL   = "wss://stream.bybit.com/v5/public/spot"
)

// Kline is one spot candlestick.
type Kline struct {
	StartTime int64
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// Client talks to Bybit's public spot endpoints. No credentials are
// needed; everything the scanner uses is public market data.
type Client struct {
	restURL string
	http    *http.Client
}

// NewClient creates a client against the production API.
func NewClient() *Client {
	return &Client{
		restURL: defaultRESTURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithURL creates a client against a custom base URL (tests).
func NewClientWithURL(baseURL string) *Client {
	c := NewClient()
	c.restURL = baseURL
	return c
}

// envelope is the common v5 response wrapper.
type envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	u := c.restURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return fmt.Errorf("bybit: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bybit: %s returned status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("bybit: decode %s: %w", path, err)
	}
	if env.RetCode != 0 {
		return fmt.Errorf("bybit: %s retCode %d: %s", path, env.RetCode, env.RetMsg)
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("bybit: decode %s result: %w", path, err)
	}
	return nil
}

// GetInstruments returns every spot pair currently trading on the venue.
func (c *Client) GetInstruments() ([]market.Pair, error) {
	var result struct {
		List []struct {
			Symbol    string `json:"symbol"`
			BaseCoin  string `json:"baseCoin"`
			QuoteCoin string `json:"quoteCoin"`
			Status    string `json:"status"`
		} `json:"list"`
	}

	params := url.Values{"category": {"spot"}, "limit": {"1000"}}
	if err := c.get("/v5/market/instruments-info", params, &result); err != nil {
		return nil, err
	}

	pairs := make([]market.Pair, 0, len(result.List))
	for _, inst := range result.List {
		if inst.Status != "Trading" {
			continue
		}
		pairs = append(pairs, market.Pair{Base: inst.BaseCoin, Quote: inst.QuoteCoin})
	}
	return pairs, nil
}

// GetOrderBook fetches an order book snapshot for a pair, asks and bids
// sorted best-first as Bybit delivers them.
func (c *Client) GetOrderBook(pair market.Pair, depth int) (orderbook.Book, error) {
	var result struct {
		Asks [][]string `json:"a"`
		Bids [][]string `json:"b"`
	}

	params := url.Values{
		"category": {"spot"},
		"symbol":   {pair.Base + pair.Quote},
		"limit":    {strconv.Itoa(depth)},
	}
	if err := c.get("/v5/market/orderbook", params, &result); err != nil {
		return orderbook.Book{}, err
	}

	return orderbook.Book{
		Asks: parseSide(result.Asks),
		Bids: parseSide(result.Bids),
	}, nil
}

// GetKlines fetches up to limit candles for a pair at the given interval
// (Bybit notation: "15" for 15 minutes), oldest first.
func (c *Client) GetKlines(pair market.Pair, interval string, limit int) ([]Kline, error) {
	var result struct {
		List [][]string `json:"list"`
	}

	params := url.Values{
		"category": {"spot"},
		"symbol":   {pair.Base + pair.Quote},
		"interval": {interval},
		"limit":    {strconv.Itoa(limit)},
	}
	if err := c.get("/v5/market/kline", params, &result); err != nil {
		return nil, err
	}

	// Bybit returns newest first; flip to chronological order.
	klines := make([]Kline, 0, len(result.List))
	for i := len(result.List) - 1; i >= 0; i-- {
		row := result.List[i]
		if len(row) < 6 {
			continue
		}
		ts, _ := strconv.ParseInt(row[0], 10, 64)
		klines = append(klines, Kline{
			StartTime: ts,
			Open:      ParseDecimal(row[1]),
			High:      ParseDecimal(row[2]),
			Low:       ParseDecimal(row[3]),
			Close:     ParseDecimal(row[4]),
			Volume:    ParseDecimal(row[5]),
		})
	}
	return klines, nil
}

func parseSide(rows [][]string) orderbook.Side {
	side := make(orderbook.Side, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		side = append(side, orderbook.Level{
			Price:    ParseDecimal(row[0]),
			Quantity: ParseDecimal(row[1]),
		})
	}
	return side
}

// ParseDecimal parses a price/quantity string, zero on garbage.
func ParseDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
