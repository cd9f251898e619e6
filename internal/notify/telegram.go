package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"aplus-academy/pkg/logger"
)

// Telegram posts HTML messages to a single staff chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// NewTelegram authorizes the bot. endpoint is a tgbotapi endpoint format
// string; empty means the public Telegram API.
func NewTelegram(token string, chatID int64, endpoint string, log *zap.Logger) (*Telegram, error) {
	if log == nil {
		log = zap.L()
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Info("telegram bot authorized", zap.String(logger.FieldAccount, api.Self.UserName))

	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

func (t *Telegram) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// Nop drops every message. It stands in when no bot token is configured.
type Nop struct{}

func (Nop) Send(context.Context, string) error { return nil }
