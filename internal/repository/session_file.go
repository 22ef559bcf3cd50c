package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// FileSessionRepository keeps one JSON document per session key in a directory.
type FileSessionRepository struct {
	dir string
}

// NewFileSessionRepository creates the directory if needed and returns a repository over it.
func NewFileSessionRepository(dir string) (*FileSessionRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileSessionRepository{dir: dir}, nil
}

// Load reads the session stored under key.
func (r *FileSessionRepository) Load(_ context.Context, key string) (*entities.PersistedSession, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return DecodeSession(data)
}

// Save writes the session under key, replacing any previous value.
func (r *FileSessionRepository) Save(_ context.Context, key string, s *entities.PersistedSession) error {
	data, err := EncodeSession(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	// Rename is atomic, so a reader never sees a half-written file.
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *FileSessionRepository) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(r.dir, name+".json")
}
