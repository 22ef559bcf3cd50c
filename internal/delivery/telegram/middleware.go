package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the owner something went wrong.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// requireSession answers with msgNoSession instead of running fn while no session is active.
func (h *Handler) requireSession(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, ok := h.sessions.Current(); !ok {
			return h.send(newPlainMessage(chatID, msgNoSession))
		}
		return fn(ctx, chatID)
	}
}

// isOwner reports whether the chat may use the bot.
func (h *Handler) isOwner(chatID int64) bool {
	return h.ownerChatID != 0 && chatID == h.ownerChatID
}
