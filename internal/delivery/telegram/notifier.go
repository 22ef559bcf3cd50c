package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/storage"
)

// Notifier sends study reminders to the owner chat. Only the latest
// reminder is kept in the chat; the previous one is deleted.
type Notifier struct {
	bot      Bot
	chatID   int64
	messages *storage.ReminderStorage
	titles   map[string]string
	logger   *zap.Logger
}

// NewNotifier creates a new Notifier. sources supply bank titles.
func NewNotifier(bot Bot, chatID int64, messages *storage.ReminderStorage, sources []entities.BankSource, logger *zap.Logger) *Notifier {
	titles := make(map[string]string, len(sources))
	for _, s := range sources {
		titles[s.ID] = s.Title
	}
	return &Notifier{
		bot:      bot,
		chatID:   chatID,
		messages: messages,
		titles:   titles,
		logger:   logger,
	}
}

func (n *Notifier) SendReminder(_ context.Context, payload entities.ReminderPayload) error {
	if n.chatID == 0 {
		return fmt.Errorf("owner chat is not configured")
	}

	title := payload.BankID
	if t, ok := n.titles[payload.BankID]; ok && t != "" {
		title = t
	}

	msg := newPlainMessage(n.chatID, fmt.Sprintf(msgReminder,
		"📚 "+title, payload.Progress.Viewed, payload.Progress.Total))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := n.bot.Send(msg)
	if err != nil {
		return err
	}

	prev, hadPrev := n.messages.UpsertAndGetPrev(n.chatID, sent.MessageID)
	if hadPrev {
		if _, err := n.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
			n.logger.Warn("failed to delete previous reminder",
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}

	return nil
}
