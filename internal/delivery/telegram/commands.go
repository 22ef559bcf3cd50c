package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
)

const msgSaveFailed = "İlerleme kaydedilemedi."

var errInvalidRange = errors.New("invalid range")

// handleStart shows the welcome text with the bank picker.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildBankKeyboard(h.banks.Sources())
		return h.send(msg)
	}
}

func (h *Handler) handleBank(choice string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.TrimSpace(choice) == "" {
			msg := newPlainMessage(chatID, msgChooseBank)
			msg.ReplyMarkup = buildBankKeyboard(h.banks.Sources())
			return h.send(msg)
		}
		return h.openBank(ctx, chatID, choice)
	}
}

// openBank loads the chosen bank and either asks about the saved session
// or starts a sequential one.
func (h *Handler) openBank(ctx context.Context, chatID int64, choice string) error {
	h.narration.Stop()

	src, fallback, err := h.banks.Select(choice)
	if err != nil {
		return fmt.Errorf("select bank: %w", err)
	}
	if fallback {
		h.sendError(chatID, msgBankFallback)
	}

	bank, err := h.banks.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("load bank: %w", err)
	}

	// The previous bank's session ends here, whatever the new bank holds.
	h.sessions.Reset()

	h.mu.Lock()
	h.bank = bank
	h.pendingResume = false
	if bank.Empty() {
		h.bank = nil
	}
	h.mu.Unlock()

	if bank.Empty() {
		return h.send(newPlainMessage(chatID, msgEmptyBank))
	}

	saved, err := h.sessions.Saved(ctx, bank.ID)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.pendingResume = saved != nil
	h.mu.Unlock()

	if saved != nil {
		msg := newPlainMessage(chatID, fmt.Sprintf(msgResumePrompt, saved.CurrentIndex+1, len(saved.ShuffledQuestions)))
		msg.ReplyMarkup = buildResumeKeyboard()
		return h.send(msg)
	}

	if _, err := h.sessions.StartSequential(ctx, bank, service.ResumeNever); err != nil {
		return err
	}
	return h.sendQuestion(chatID)
}

// resume answers the saved-session prompt.
func (h *Handler) resume(ctx context.Context, chatID int64, accept bool) error {
	h.mu.Lock()
	bank, pending := h.bank, h.pendingResume
	h.pendingResume = false
	h.mu.Unlock()

	if bank == nil || !pending {
		return nil
	}

	resume := service.ResumeNever
	if accept {
		resume = service.ResumeAlways
	}

	resumed, err := h.sessions.StartSequential(ctx, bank, resume)
	if err != nil {
		return err
	}

	h.logger.Info("bank opened",
		zap.String("bank", bank.ID),
		zap.Bool("resumed", resumed),
	)
	return h.sendQuestion(chatID)
}

func (h *Handler) handleNext() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.step(ctx, chatID, 0, h.sessions.Advance, msgFinished)
	}
}

func (h *Handler) handlePrev() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.step(ctx, chatID, 0, h.sessions.Retreat, msgFirstQuestion)
	}
}

// step moves the cursor and shows the new question, editing msgID in place
// when it is set. boundary is sent when the cursor cannot move.
func (h *Handler) step(ctx context.Context, chatID int64, msgID int, move func(context.Context) (bool, error), boundary string) error {
	if _, ok := h.sessions.Current(); !ok {
		return h.send(newPlainMessage(chatID, msgNoSession))
	}

	h.narration.Stop()

	moved, err := move(ctx)
	if err != nil {
		h.reportSaveError(chatID, err)
	}
	if !moved {
		return h.send(newPlainMessage(chatID, boundary))
	}

	if msgID != 0 {
		return h.editQuestion(chatID, msgID)
	}
	return h.sendQuestion(chatID)
}

func (h *Handler) handleJump(arg string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return h.send(newPlainMessage(chatID, msgUseJump))
		}

		if _, ok := h.sessions.Current(); !ok {
			return h.send(newPlainMessage(chatID, msgNoSession))
		}

		n, err := strconv.Atoi(arg)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgInvalidNumber))
		}

		h.narration.Stop()

		jumped, err := h.sessions.JumpToNumber(ctx, n)
		if err != nil {
			h.reportSaveError(chatID, err)
		}
		if !jumped {
			return h.send(newPlainMessage(chatID, msgInvalidNumber))
		}

		return h.sendQuestion(chatID)
	}
}

func (h *Handler) handleShuffle(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		r, err := parseRange(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseShuffle))
		}

		h.mu.Lock()
		bank := h.bank
		h.mu.Unlock()

		if bank == nil {
			return h.send(newPlainMessage(chatID, msgNoBank))
		}

		h.narration.Stop()

		err = h.sessions.StartShuffled(ctx, bank, r)
		switch {
		case errors.Is(err, service.ErrEmptySubset):
			return h.send(newPlainMessage(chatID, msgEmptySubset))
		case errors.Is(err, service.ErrEmptyBank):
			return h.send(newPlainMessage(chatID, msgEmptyBank))
		case err != nil:
			return err
		}

		h.mu.Lock()
		h.pendingResume = false
		h.mu.Unlock()

		_ = h.send(newPlainMessage(chatID, fmt.Sprintf(msgShuffled, h.sessions.ViewedCount().Total)))
		return h.sendQuestion(chatID)
	}
}

// parseRange parses "" or "start end".
func parseRange(args string) (*entities.Range, error) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return nil, nil
	case 2:
		start, err1 := strconv.Atoi(fields[0])
		end, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, errInvalidRange
		}
		return &entities.Range{Start: start, End: end}, nil
	default:
		return nil, errInvalidRange
	}
}

func (h *Handler) handleRead() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.narration.Running() {
			return h.send(newPlainMessage(chatID, msgNarrationRunning))
		}

		_ = h.send(newPlainMessage(chatID, msgNarrationStarted))

		err := h.narration.Start(ctx, h.sessions, func(err error) {
			h.narrationDone(chatID, err)
		})
		if errors.Is(err, service.ErrNarrationRunning) {
			return nil
		}
		return err
	}
}

func (h *Handler) narrationDone(chatID int64, err error) {
	switch {
	case err == nil:
		_ = h.send(newPlainMessage(chatID, msgNarrationFinished))
	case errors.Is(err, context.Canceled):
		_ = h.send(newPlainMessage(chatID, msgNarrationStopped))
	default:
		h.logger.Error("narration stopped with error", zap.Error(err))
		h.sendError(chatID, msgInternalError)
	}
}

func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.narration.Running() {
			return h.send(newPlainMessage(chatID, msgNothingToStop))
		}
		h.narration.Stop()
		return nil
	}
}

func (h *Handler) handleProgress() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		progress := h.sessions.ViewedCount()
		text := fmt.Sprintf("<b>📊 İlerleme</b>\n\n📚 <b>Banka:</b> %s\n\n%s",
			escape(h.bankTitle()), formatProgress(progress))
		return h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) handleSettings() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings := h.settings.Get()

		msg := newHTMLMessage(chatID, renderSettings(settings))
		msg.ReplyMarkup = buildSettingsKeyboard(settings)
		return h.send(msg)
	}
}

func (h *Handler) handleLang(arg string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return h.send(newPlainMessage(chatID, msgUseLang))
		}

		lang, err := h.settings.SetLanguage(arg)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgInvalidLang))
		}
		return h.send(newPlainMessage(chatID, "🗣 Okuma dili: "+lang))
	}
}

func (h *Handler) handleSpeed(arg string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		rate, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(arg), ",", "."), 64)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseSpeed))
		}

		rate = h.settings.SetRate(rate)
		return h.send(newPlainMessage(chatID, "⏩ Okuma hızı: "+strconv.FormatFloat(rate, 'f', -1, 64)+"x"))
	}
}

func (h *Handler) handleToggleAnswer() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		on := h.settings.ToggleShowAnswer()
		return h.send(newPlainMessage(chatID, "👁 Cevabı her zaman göster: "+formatBool(on)))
	}
}

// questionView renders the current question. chosen < 0 means no answer was picked.
func (h *Handler) questionView(chosen int) (string, tgbotapi.InlineKeyboardMarkup, bool) {
	view, ok := h.sessions.View()
	if !ok {
		return "", tgbotapi.InlineKeyboardMarkup{}, false
	}

	text, kb := h.renderView(view, chosen)
	return text, kb, true
}

func (h *Handler) renderView(view entities.View, chosen int) (string, tgbotapi.InlineKeyboardMarkup) {
	var marks []entities.ChoiceMark
	switch {
	case chosen >= 0:
		marks = h.evaluator.Evaluate(view.Question, chosen)
	case h.settings.Get().ShowAnswer:
		marks = h.evaluator.Reveal(view.Question)
	default:
		marks = h.evaluator.Neutral(view.Question)
	}

	return renderQuestion(view.Question, view.Progress, marks), buildQuestionKeyboard(view.Cursor, marks)
}

func (h *Handler) sendQuestion(chatID int64) error {
	text, kb, ok := h.questionView(-1)
	if !ok {
		return h.send(newPlainMessage(chatID, msgNoSession))
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = kb
	return h.send(msg)
}

func (h *Handler) editQuestion(chatID int64, msgID int) error {
	text, kb, ok := h.questionView(-1)
	if !ok {
		return h.send(newPlainMessage(chatID, msgNoSession))
	}
	return h.editView(chatID, msgID, text, kb)
}

func (h *Handler) editView(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	edit := newHTMLEdit(chatID, msgID, text)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

func (h *Handler) bankTitle() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.bank != nil && h.bank.Title != "" {
		return h.bank.Title
	}
	return h.sessions.BankID()
}

// reportSaveError tells the owner a move was not persisted. The move itself stands.
func (h *Handler) reportSaveError(chatID int64, err error) {
	h.logger.Error("session not saved", zap.Error(err))
	h.sendError(chatID, msgSaveFailed)
}
