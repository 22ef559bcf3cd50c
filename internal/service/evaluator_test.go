package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
)

func classes(marks []entities.ChoiceMark) []entities.Classification {
	out := make([]entities.Classification, len(marks))
	for i, m := range marks {
		out[i] = m.Classification
	}
	return out
}

func TestAnswerEvaluator_Evaluate(t *testing.T) {
	e := service.NewAnswerEvaluator()
	q := question(intPtr(501), "501. Soru", 2)

	tests := []struct {
		name   string
		chosen int
		want   []entities.Classification
	}{
		{
			name:   "wrong choice",
			chosen: 1,
			want:   []entities.Classification{entities.Neutral, entities.Incorrect, entities.Correct, entities.Neutral},
		},
		{
			name:   "correct choice",
			chosen: 2,
			want:   []entities.Classification{entities.Neutral, entities.Neutral, entities.Correct, entities.Neutral},
		},
		{
			name:   "out of range",
			chosen: 9,
			want:   []entities.Classification{entities.Neutral, entities.Neutral, entities.Correct, entities.Neutral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marks := e.Evaluate(q, tt.chosen)
			assert.Equal(t, tt.want, classes(marks))
			for i, m := range marks {
				assert.Equal(t, i, m.Index)
			}
		})
	}
}

func TestAnswerEvaluator_RevealAndNeutral(t *testing.T) {
	e := service.NewAnswerEvaluator()
	q := question(nil, "Soru", 0)

	assert.Equal(t,
		[]entities.Classification{entities.Correct, entities.Neutral, entities.Neutral, entities.Neutral},
		classes(e.Reveal(q)),
	)
	assert.Equal(t,
		[]entities.Classification{entities.Neutral, entities.Neutral, entities.Neutral, entities.Neutral},
		classes(e.Neutral(q)),
	)
}
