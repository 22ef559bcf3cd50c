package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptSession  = errors.New("stored session is corrupt")
)

const sessionKeySuffix = "_shuffleData"

// SessionKey returns the storage key of the session for a bank file.
func SessionKey(bankID string) string {
	return bankID + sessionKeySuffix
}

// EncodeSession serializes a session snapshot.
func EncodeSession(s *entities.PersistedSession) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("encode session: nil snapshot")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// DecodeSession deserializes and validates a stored session.
// Any decoding or shape problem is reported as ErrCorruptSession.
func DecodeSession(data []byte) (*entities.PersistedSession, error) {
	var s entities.PersistedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return &s, nil
}
