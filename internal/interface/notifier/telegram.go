// Package notifier implements the UserNotifier port for Telegram.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/pkg/logger"
)

// TelegramNotifier delivers price alerts as Telegram messages. The
// underlying HTTP client carries the timeout, so a hung delivery cannot
// stall the update loop longer than that.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token.
func NewTelegramNotifier(token string, timeout time.Duration, log logger.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	log.Info("telegram notifier ready", "bot", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, logger: log}, nil
}

// NotifyUser sends the new cheapest offer for the direction to one user.
func (n *TelegramNotifier) NotifyUser(_ context.Context, userID int64, tickets []entity.Ticket, direction entity.FlightDirection, directionID int64) error {
	msg := tgbotapi.NewMessage(userID, formatNotification(tickets, direction))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message to %d (direction %d): %w", userID, directionID, err)
	}
	return nil
}
