package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// Mode selects how record boundaries are found.
type Mode string

const (
	// ModeStrict reads fixed blocks of six lines. A malformed block consumes
	// its six lines and parsing continues at the next block start.
	ModeStrict Mode = "strict"
	// ModeResync starts every record at the next line that looks like a
	// numbered question, so one malformed record does not shift the rest.
	// Unnumbered questions are never found in this mode.
	ModeResync Mode = "resync"
)

// recordLines is the number of lines in one record:
// question, four choices, designator.
const recordLines = 1 + entities.ChoicesPerQuestion + 1

var questionNumberPattern = regexp.MustCompile(`^(\d+)\.`)

// Parser converts raw bank text into questions.
type Parser struct {
	mode Mode
}

// New creates a parser for the given mode.
func New(mode Mode) (*Parser, error) {
	switch mode {
	case ModeStrict, ModeResync:
		return &Parser{mode: mode}, nil
	case "":
		return &Parser{mode: ModeStrict}, nil
	default:
		return nil, fmt.Errorf("unknown parse mode: %s", mode)
	}
}

// Mode returns the parser mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse extracts all well-formed questions from raw. Malformed records are skipped.
func (p *Parser) Parse(raw string) []entities.Question {
	if p.mode == ModeResync {
		return ParseResync(raw)
	}
	return ParseStrict(raw)
}

// ParseStrict reads raw as consecutive six-line records.
func ParseStrict(raw string) []entities.Question {
	lines := strings.Split(raw, "\n")
	questions := make([]entities.Question, 0, len(lines)/recordLines)

	for i := 0; i < len(lines); i += recordLines {
		end := min(i+recordLines, len(lines))
		if q, ok := parseRecord(lines[i:end]); ok {
			questions = append(questions, q)
		}
	}

	return questions
}

// ParseResync reads raw as six-line records, each starting at a line with a
// leading "N." numeral. Lines between records are ignored and a record cut
// short by the next question line is dropped. A question without a numeral
// never starts a record, so unlike ParseStrict it is skipped.
func ParseResync(raw string) []entities.Question {
	lines := strings.Split(raw, "\n")
	questions := make([]entities.Question, 0, len(lines)/recordLines)

	i := 0
	for i < len(lines) {
		if !isQuestionStart(lines[i]) {
			i++
			continue
		}

		end := min(i+recordLines, len(lines))
		if next := nextQuestionStart(lines, i+1, end); next != -1 {
			i = next
			continue
		}

		q, ok := parseRecord(lines[i:end])
		if !ok {
			i++
			continue
		}

		questions = append(questions, q)
		i = end
	}

	return questions
}

// parseRecord builds a question from one record. It reports false when any
// part is missing or no choice matches the designator.
func parseRecord(block []string) (entities.Question, bool) {
	if len(block) < recordLines {
		return entities.Question{}, false
	}

	text := strings.TrimSpace(block[0])
	if text == "" {
		return entities.Question{}, false
	}

	choices := make([]string, 0, entities.ChoicesPerQuestion)
	for _, line := range block[1 : 1+entities.ChoicesPerQuestion] {
		choices = append(choices, strings.TrimSpace(line))
	}

	designator := strings.ToUpper(strings.TrimSpace(block[recordLines-1]))
	if designator == "" {
		return entities.Question{}, false
	}

	correct := -1
	for i, c := range choices {
		if strings.HasPrefix(strings.ToUpper(c), designator) {
			correct = i
			break
		}
	}
	if correct == -1 {
		return entities.Question{}, false
	}

	return entities.NewQuestion(extractNumber(text), text, choices, correct), true
}

// extractNumber returns the leading "N." numeral of a question line.
func extractNumber(text string) *int {
	m := questionNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func isQuestionStart(line string) bool {
	return questionNumberPattern.MatchString(strings.TrimSpace(line))
}

func nextQuestionStart(lines []string, from, to int) int {
	for j := from; j < to; j++ {
		if isQuestionStart(lines[j]) {
			return j
		}
	}
	return -1
}
