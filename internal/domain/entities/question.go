package entities

import "strings"

// ChoicesPerQuestion is the fixed number of answer choices of a bank question.
const ChoicesPerQuestion = 4

// Question is a single multiple choice record parsed from a bank file.
// JSON field names match the persisted session record.
type Question struct {
	Number        *int     `json:"number"`        // leading numeral of the question line, nil if absent
	Text          string   `json:"question"`      // trimmed question prompt
	Choices       []string `json:"choices"`       // exactly four trimmed choices
	CorrectAnswer int      `json:"correctAnswer"` // index into Choices
}

// NewQuestion creates a question copying the given choices.
func NewQuestion(number *int, text string, choices []string, correct int) Question {
	return Question{
		Number:        number,
		Text:          text,
		Choices:       append([]string(nil), choices...),
		CorrectAnswer: correct,
	}
}

// HasNumber reports whether the question carries the given number.
func (q Question) HasNumber(n int) bool {
	return q.Number != nil && *q.Number == n
}

// SortKey returns the number used for ordering. Unnumbered questions sort as zero.
func (q Question) SortKey() int {
	if q.Number == nil {
		return 0
	}
	return *q.Number
}

// CorrectChoice returns the text of the correct choice.
func (q Question) CorrectChoice() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.CorrectAnswer]
}

// Valid reports whether the question has a prompt, four choices and an answer index within them.
func (q Question) Valid() bool {
	return strings.TrimSpace(q.Text) != "" &&
		len(q.Choices) == ChoicesPerQuestion &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Choices)
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	c := q
	if q.Number != nil {
		n := *q.Number
		c.Number = &n
	}
	c.Choices = append([]string(nil), q.Choices...)
	return c
}

// Bank is the ordered set of questions parsed from one source file.
type Bank struct {
	ID        string     // bank file identifier, e.g. "isg2.txt"
	Title     string     // human readable name
	Questions []Question // in order of appearance in the source text
}

// Empty reports whether the bank has no valid questions.
func (b *Bank) Empty() bool {
	return b == nil || len(b.Questions) == 0
}

// BankSource describes where a bank file lives.
type BankSource struct {
	ID    string
	Title string
	Path  string
}

// Range is an inclusive numeric subrange of question numbers.
type Range struct {
	Start int
	End   int
}

// Contains reports whether the question number falls within the range.
// Unnumbered questions never match.
func (r Range) Contains(q Question) bool {
	return q.Number != nil && *q.Number >= r.Start && *q.Number <= r.End
}
