package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramMessenger struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramMessenger authenticates the bot. An empty token or chat id
// returns (nil, nil) and the channel stays disabled.
func NewTelegramMessenger(token string, chatID int64) (*TelegramMessenger, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate telegram bot: %w", err)
	}
	return &TelegramMessenger{bot: bot, chatID: chatID}, nil
}

func (t *TelegramMessenger) Send(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
