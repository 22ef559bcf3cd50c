package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var (
		notice string
		err    error
	)

	switch data.Action {
	case actionBank:
		err = h.openBank(ctx, chatID, data.param(0))
	case actionResume:
		h.clearKeyboard(chatID, msgID)
		err = h.resume(ctx, chatID, data.param(0) == resumeYes)
	case actionChoice:
		notice, err = h.choose(chatID, msgID, data)
	case actionNav:
		err = h.navigate(ctx, chatID, msgID, data.param(0))
	case actionRead:
		err = h.requireSession(h.handleRead())(ctx, chatID)
	case actionSettings:
		err = h.updateSettings(chatID, msgID, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", data.Raw))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", data.Raw),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)
}

// choose marks the picked choice on the question message.
func (h *Handler) choose(chatID int64, msgID int, data callbackData) (string, error) {
	cursor, ok1 := data.intParam(0)
	index, ok2 := data.intParam(1)
	if !ok1 || !ok2 {
		h.logger.Debug("invalid choice callback", zap.String("data", data.Raw))
		return "", nil
	}

	view, ok := h.sessions.View()
	if !ok || view.Cursor != cursor {
		return msgStaleQuestion, nil
	}

	text, kb := h.renderView(view, index)
	return "", h.editView(chatID, msgID, text, kb)
}

func (h *Handler) navigate(ctx context.Context, chatID int64, msgID int, direction string) error {
	switch direction {
	case navNext:
		return h.step(ctx, chatID, msgID, h.sessions.Advance, msgFinished)
	case navPrev:
		return h.step(ctx, chatID, msgID, h.sessions.Retreat, msgFirstQuestion)
	case navCurrent:
		return h.sendQuestion(chatID)
	default:
		return nil
	}
}

func (h *Handler) updateSettings(chatID int64, msgID int, data callbackData) error {
	switch data.param(0) {
	case settingsAnswer:
		h.settings.ToggleShowAnswer()
	case settingsRate:
		rate, err := strconv.ParseFloat(data.param(1), 64)
		if err != nil {
			return nil
		}
		h.settings.SetRate(rate)
	default:
		return nil
	}

	settings := h.settings.Get()
	edit := newHTMLEdit(chatID, msgID, renderSettings(settings))
	kb := buildSettingsKeyboard(settings)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

// clearKeyboard removes the inline keyboard from a message.
func (h *Handler) clearKeyboard(chatID int64, msgID int) {
	empty := tgbotapi.NewInlineKeyboardMarkup()
	empty.InlineKeyboard = [][]tgbotapi.InlineKeyboardButton{}
	if _, err := h.bot.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, empty)); err != nil {
		h.logger.Warn("failed to clear keyboard", zap.Error(err))
	}
}
