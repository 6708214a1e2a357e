// Package notify delivers status-change notifications to citizens who
// linked a Telegram chat to their account. Delivery is one-way and
// best-effort; a failed send never affects the transition result.
package notify

import (
	"fmt"
	"log"

	"samadhan/backend/internal/localization"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends a localized message when a grievance changes
// status. Implements lifecycle.Notifier.
type TelegramNotifier struct {
	BotAPI    *tgbotapi.BotAPI
	Storage   storage.Storage
	Localizer *localization.Localizer
	// Locale selects the language pack for outgoing messages.
	Locale string
}

// NewTelegramNotifier authenticates the bot. Returns an error when the
// token is rejected; callers treat a nil notifier as "notifications off".
func NewTelegramNotifier(token string, s storage.Storage, l *localization.Localizer, locale string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Telegram notifier authorized on account %s", bot.Self.UserName)

	if locale == "" {
		locale = localization.DefaultLocale
	}
	return &TelegramNotifier{BotAPI: bot, Storage: s, Localizer: l, Locale: locale}, nil
}

// StatusChanged notifies the submitter of g, if they linked a chat id.
func (n *TelegramNotifier) StatusChanged(g *models.Grievance, previous models.Status) {
	user, err := n.Storage.GetUserByID(g.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to resolve submitter %s for notification: %v", g.UserID, err)
		return
	}
	if user.TelegramChatID == 0 {
		return
	}

	text := fmt.Sprintf(
		n.Localizer.GetString(n.Locale, "notify.status_changed"),
		g.ID, g.Category, previous, g.Status,
	)
	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send status notification to chat %d: %v", user.TelegramChatID, err)
	}
}
