package bot

import (
	"fmt"
	"log/slog"

	"tapminer/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotifyBot sends best-effort game notifications to players over
// Telegram. Every send runs in its own goroutine and failures are only
// logged; the game never waits on delivery.
type NotifyBot struct {
	bot *tgbotapi.BotAPI
	log *slog.Logger
}

// NewNotifyBot authorizes the bot. A nil bot (for example in tests or
// when the token is rejected) is safe to use: sends become no-ops.
func NewNotifyBot(token string) (*NotifyBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "notify_bot")
	log.Info("notify bot authorized", "username", api.Self.UserName)

	return &NotifyBot{bot: api, log: log}, nil
}

// LevelUp congratulates a player on reaching a new level.
func (b *NotifyBot) LevelUp(tgID int64, level int) {
	b.send(tgID, fmt.Sprintf("⛏ Level up! You reached level %d.", level))
}

// ReferralJoined tells a referrer their invite was accepted.
func (b *NotifyBot) ReferralJoined(tgID int64, firstName string) {
	name := firstName
	if name == "" {
		name = "A new miner"
	}
	b.send(tgID, fmt.Sprintf("👥 %s joined with your invite link!", name))
}

func (b *NotifyBot) send(tgID int64, text string) {
	if b == nil || b.bot == nil {
		return
	}
	go func() {
		msg := tgbotapi.NewMessage(tgID, text)
		if _, err := b.bot.Send(msg); err != nil {
			b.log.Debug("notification send failed", "tg_id", tgID, "error", err)
		}
	}()
}
