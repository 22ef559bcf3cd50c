package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

type Handler struct {
	bot         Bot
	logger      *zap.Logger
	ownerChatID int64

	sessions  SessionService
	banks     BankService
	narration NarrationService
	settings  SettingsService
	evaluator AnswerEvaluator

	mu            sync.Mutex
	bank          *entities.Bank // bank of the active or pending session
	pendingResume bool           // waiting for a yes/no answer about the saved session
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	ownerChatID int64,
	sessions SessionService,
	banks BankService,
	narration NarrationService,
	settings SettingsService,
	evaluator AnswerEvaluator,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		ownerChatID: ownerChatID,
		sessions:    sessions,
		banks:       banks,
		narration:   narration,
		settings:    settings,
		evaluator:   evaluator,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int64("owner_chat_id", h.ownerChatID))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.narration.Stop()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.narration.Stop()
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		if cb.Message == nil || !h.isOwner(cb.Message.Chat.ID) {
			return
		}

		h.logger.Debug("callback received",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
		)
		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	if !h.isOwner(chatID) {
		h.logger.Debug("ignoring message from foreign chat", zap.Int64("chat_id", chatID))
		if h.ownerChatID == 0 {
			_ = h.send(newPlainMessage(chatID, fmt.Sprintf(msgNotOwner, chatID)))
		}
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart())(ctx, chatID)
		case "bank":
			_ = h.withErrorHandling(h.handleBank(args))(ctx, chatID)
		case "next":
			_ = h.withErrorHandling(h.handleNext())(ctx, chatID)
		case "prev":
			_ = h.withErrorHandling(h.handlePrev())(ctx, chatID)
		case "jump":
			_ = h.withErrorHandling(h.handleJump(args))(ctx, chatID)
		case "shuffle":
			_ = h.withErrorHandling(h.handleShuffle(args))(ctx, chatID)
		case "read":
			_ = h.withErrorHandling(h.requireSession(h.handleRead()))(ctx, chatID)
		case "stop":
			_ = h.withErrorHandling(h.handleStop())(ctx, chatID)
		case "progress":
			_ = h.withErrorHandling(h.requireSession(h.handleProgress()))(ctx, chatID)
		case "settings":
			_ = h.withErrorHandling(h.handleSettings())(ctx, chatID)
		case "lang":
			_ = h.withErrorHandling(h.handleLang(args))(ctx, chatID)
		case "speed":
			_ = h.withErrorHandling(h.handleSpeed(args))(ctx, chatID)
		case "answer":
			_ = h.withErrorHandling(h.handleToggleAnswer())(ctx, chatID)
		case "help":
			_ = h.send(newHTMLMessage(chatID, msgHelp))
		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleJump(update.Message.Text))(ctx, chatID)
}

// Commands returns the bot command menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Soru bankası seç"},
		{Command: "next", Description: "Sonraki soru"},
		{Command: "prev", Description: "Önceki soru"},
		{Command: "jump", Description: "Numaralı soruya git (kullanım: /jump 25)"},
		{Command: "shuffle", Description: "Soruları karıştır (kullanım: /shuffle 10 50)"},
		{Command: "read", Description: "Sesli oku"},
		{Command: "stop", Description: "Sesli okumayı durdur"},
		{Command: "progress", Description: "İlerleme"},
		{Command: "settings", Description: "Ayarlar"},
		{Command: "help", Description: "Yardım"},
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator, optionally showing text.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
