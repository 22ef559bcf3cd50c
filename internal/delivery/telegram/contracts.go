package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
)

// Bot is the part of the Telegram API client the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type SessionService interface {
	Saved(ctx context.Context, bankID string) (*entities.PersistedSession, error)
	StartSequential(ctx context.Context, bank *entities.Bank, resume service.ResumeFunc) (bool, error)
	StartShuffled(ctx context.Context, bank *entities.Bank, r *entities.Range) error
	Current() (entities.Question, bool)
	View() (entities.View, bool)
	Reset()
	BankID() string
	Advance(ctx context.Context) (bool, error)
	Retreat(ctx context.Context) (bool, error)
	JumpToNumber(ctx context.Context, n int) (bool, error)
	ViewedCount() entities.Progress
}

type BankService interface {
	Sources() []entities.BankSource
	Select(choice string) (entities.BankSource, bool, error)
	Load(ctx context.Context, src entities.BankSource) (*entities.Bank, error)
}

type NarrationService interface {
	Start(ctx context.Context, nav service.Navigator, onDone func(error)) error
	Stop()
	Running() bool
}

type SettingsService interface {
	Get() entities.Settings
	SetLanguage(lang string) (string, error)
	SetRate(rate float64) float64
	ToggleShowAnswer() bool
}

type AnswerEvaluator interface {
	Evaluate(q entities.Question, chosen int) []entities.ChoiceMark
	Reveal(q entities.Question) []entities.ChoiceMark
	Neutral(q entities.Question) []entities.ChoiceMark
}
