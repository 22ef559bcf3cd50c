package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

var ErrBankNotFound = errors.New("bank not found")

// BankRepository provides access to the raw text of the configured bank files.
type BankRepository struct {
	sources []entities.BankSource
}

// NewBankRepository creates a new BankRepository over the given sources, in selection order.
func NewBankRepository(sources []entities.BankSource) *BankRepository {
	return &BankRepository{
		sources: append([]entities.BankSource(nil), sources...),
	}
}

// Sources returns the configured banks in selection order.
func (r *BankRepository) Sources() []entities.BankSource {
	return append([]entities.BankSource(nil), r.sources...)
}

// GetByID returns the source with the given bank identifier.
func (r *BankRepository) GetByID(id string) (entities.BankSource, error) {
	for _, s := range r.sources {
		if s.ID == id {
			return s, nil
		}
	}
	return entities.BankSource{}, ErrBankNotFound
}

// GetByPosition returns the source at 1-based position n.
func (r *BankRepository) GetByPosition(n int) (entities.BankSource, error) {
	if n < 1 || n > len(r.sources) {
		return entities.BankSource{}, ErrBankNotFound
	}
	return r.sources[n-1], nil
}

// ReadRaw reads the full text of a bank file.
func (r *BankRepository) ReadRaw(_ context.Context, id string) (string, error) {
	src, err := r.GetByID(id)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("read bank %s: %w", id, err)
	}

	return string(data), nil
}
