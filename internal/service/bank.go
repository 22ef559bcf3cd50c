package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// BankService selects and loads question banks.
type BankService struct {
	repo          BankRepository
	parser        QuestionParser
	defaultChoice int
	logger        *zap.Logger
}

// NewBankService creates a new BankService. defaultChoice is the 1-based
// position used when a selection is invalid.
func NewBankService(repo BankRepository, parser QuestionParser, defaultChoice int, logger *zap.Logger) *BankService {
	return &BankService{
		repo:          repo,
		parser:        parser,
		defaultChoice: defaultChoice,
		logger:        logger,
	}
}

// Sources returns the selectable banks in order.
func (s *BankService) Sources() []entities.BankSource {
	return s.repo.Sources()
}

// Select resolves a user choice such as "1", "2" or "3" to a bank source.
// Invalid input falls back to the default bank; the second result reports
// whether the fallback was used.
func (s *BankService) Select(choice string) (entities.BankSource, bool, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(choice)); err == nil {
		if src, err := s.repo.GetByPosition(n); err == nil {
			return src, false, nil
		}
	}

	src, err := s.repo.GetByPosition(s.defaultChoice)
	if err != nil {
		return entities.BankSource{}, true, err
	}
	return src, true, nil
}

// Load reads and parses a bank. A bank without valid questions is returned
// as is; callers check Bank.Empty.
func (s *BankService) Load(ctx context.Context, src entities.BankSource) (*entities.Bank, error) {
	raw, err := s.repo.ReadRaw(ctx, src.ID)
	if err != nil {
		return nil, err
	}

	questions := s.parser.Parse(raw)

	s.logger.Info("bank loaded",
		zap.String("bank", src.ID),
		zap.Int("questions", len(questions)),
	)

	return &entities.Bank{
		ID:        src.ID,
		Title:     src.Title,
		Questions: questions,
	}, nil
}
