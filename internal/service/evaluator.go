package service

import (
	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// AnswerEvaluator classifies the choices of a question for rendering.
type AnswerEvaluator struct{}

// NewAnswerEvaluator creates a new AnswerEvaluator.
func NewAnswerEvaluator() *AnswerEvaluator {
	return &AnswerEvaluator{}
}

// Evaluate marks the correct choice Correct and the chosen one, if different,
// Incorrect. Every other choice is Neutral. An out-of-range chosen index
// simply matches nothing.
func (e *AnswerEvaluator) Evaluate(q entities.Question, chosen int) []entities.ChoiceMark {
	marks := make([]entities.ChoiceMark, len(q.Choices))
	for i := range q.Choices {
		c := entities.Neutral
		switch i {
		case q.CorrectAnswer:
			c = entities.Correct
		case chosen:
			c = entities.Incorrect
		}
		marks[i] = entities.ChoiceMark{Index: i, Classification: c}
	}
	return marks
}

// Reveal marks only the correct choice, for the always-show-answer mode.
func (e *AnswerEvaluator) Reveal(q entities.Question) []entities.ChoiceMark {
	return e.Evaluate(q, -1)
}

// Neutral marks every choice Neutral.
func (e *AnswerEvaluator) Neutral(q entities.Question) []entities.ChoiceMark {
	marks := make([]entities.ChoiceMark, len(q.Choices))
	for i := range q.Choices {
		marks[i] = entities.ChoiceMark{Index: i, Classification: entities.Neutral}
	}
	return marks
}
