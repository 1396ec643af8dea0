// Package notify pushes scan and trade alerts to Telegram. Delivery
// failures are logged and swallowed; notifications must never take the
// bots down.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/web3guy0/tribot/internal/triangle"
)

// Telegram sends HTML-formatted messages to a single chat. A nil
// *Telegram is a valid no-op sender, so callers can wire it
// unconditionally.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	top    int
}

// NewTelegram connects the bot API. Returns (nil, nil) when token or
// chat id are unset, which disables notifications.
func NewTelegram(token string, chatID int64, top int) (*Telegram, error) {
	if token == "" || chatID == 0 {
		log.Warn().Msg("Telegram not configured, notifications disabled")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("🤖 Telegram bot connected")

	return &Telegram{api: api, chatID: chatID, top: top}, nil
}

// Report implements scanner.Reporter: one message per ranked route, up
// to the configured top count. Empty cycles are not pushed; the console
// covers those.
func (t *Telegram) Report(opps []triangle.Opportunity) {
	if t == nil {
		return
	}

	n := len(opps)
	if t.top > 0 && n > t.top {
		n = t.top
	}

	for i, o := range opps[:n] {
		text := fmt.Sprintf(
			"<b>%d. %s</b>\n💰 Profit: <b>%s USDT</b>\n📈 Spread: <b>%s%%</b>\n💧 Liquidity: <b>%s USDT</b>",
			i+1, o.Route,
			o.Profit.StringFixed(2),
			o.Pct.StringFixed(2),
			o.Liquidity.StringFixed(0),
		)
		t.send(text)
	}
}

// SendTrade pushes a trend-bot trade alert.
func (t *Telegram) SendTrade(action string, qty, price decimal.Decimal, symbol, reason string) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("<b>%s</b> %s %s @ %s USDT\n📋 %s",
		action, qty.StringFixed(3), symbol, price.StringFixed(3), reason)
	t.send(text)
}

// SendMessage pushes a plain status line.
func (t *Telegram) SendMessage(text string) {
	if t == nil {
		return
	}
	t.send(text)
}

func (t *Telegram) send(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := t.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Telegram send failed")
	}
}
