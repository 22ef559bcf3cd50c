package service

import (
	"context"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// SessionStore persists session snapshots keyed by bank.
type SessionStore interface {
	Load(ctx context.Context, key string) (*entities.PersistedSession, error)
	Save(ctx context.Context, key string, session *entities.PersistedSession) error
}

// BankRepository provides the configured bank files.
type BankRepository interface {
	Sources() []entities.BankSource
	GetByPosition(n int) (entities.BankSource, error)
	ReadRaw(ctx context.Context, id string) (string, error)
}

// QuestionParser turns raw bank text into questions.
type QuestionParser interface {
	Parse(raw string) []entities.Question
}

// Narrator speaks an utterance and returns once the speech has finished.
type Narrator interface {
	Speak(ctx context.Context, u Utterance) error
}

// ReminderNotifier sends study reminders to the owner.
type ReminderNotifier interface {
	SendReminder(ctx context.Context, payload entities.ReminderPayload) error
}

// ProgressSource exposes the active session's progress.
type ProgressSource interface {
	BankID() string
	ViewedCount() entities.Progress
}
