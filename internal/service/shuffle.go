package service

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// Shuffler produces uniformly random orderings of questions.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler creates a new Shuffler seeded from the clock.
func NewShuffler() *Shuffler {
	return NewShufflerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewShufflerWithSource creates a Shuffler over a fixed source, for reproducible orderings.
func NewShufflerWithSource(src rand.Source) *Shuffler {
	return &Shuffler{rng: rand.New(src)}
}

// Shuffled returns a shuffled copy of the input slice.
// rand.Shuffle is a Fisher-Yates pass from the last index down.
func (s *Shuffler) Shuffled(in []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), in...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

// filterRange keeps questions whose number falls within r, preserving order.
func filterRange(questions []entities.Question, r entities.Range) []entities.Question {
	out := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if r.Contains(q) {
			out = append(out, q)
		}
	}
	return out
}

// sortedByNumber returns a copy of questions stably sorted by number.
func sortedByNumber(questions []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), questions...)
	slices.SortStableFunc(out, func(a, b entities.Question) int {
		return cmp.Compare(a.SortKey(), b.SortKey())
	})
	return out
}
