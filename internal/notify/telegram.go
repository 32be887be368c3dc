// Package notify delivers best-effort admin notifications through the
// Telegram Bot API. Failures here never affect complaint intake.
package notify

import (
	"fmt"
	"log"

	"roadwatch/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts a short message to a configured admin chat when a
// complaint is registered.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier authenticates against the Bot API. Both the token
// and the chat ID must be set.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram notifier requires a bot token and a chat id")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("INFO: Telegram notifier authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{BotAPI: bot, ChatID: chatID}, nil
}

// ComplaintRegistered sends the new-complaint summary to the admin chat.
func (n *TelegramNotifier) ComplaintRegistered(c *models.Complaint) error {
	text := fmt.Sprintf(
		"New complaint %s\nVehicle: %s\nViolation: %s\nLocation: %s\nDate: %s %s",
		c.ComplaintID, c.VehicleNo, c.ViolationType, c.Location, c.Date, c.Time,
	)

	msg := tgbotapi.NewMessage(n.ChatID, text)
	_, err := n.BotAPI.Send(msg)
	return err
}
