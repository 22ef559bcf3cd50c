package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/isg-quiz-bot/internal/parser"
)

func record(lines ...string) string {
	return strings.Join(lines, "\n")
}

const wellFormed = "501. Soru metni\n" +
	"A) Birinci\n" +
	"B) İkinci\n" +
	"C) Üçüncü\n" +
	"D) Dördüncü\n" +
	"c"

func TestParseStrict_WellFormedRecord(t *testing.T) {
	questions := parser.ParseStrict(wellFormed)
	require.Len(t, questions, 1)

	q := questions[0]
	require.NotNil(t, q.Number)
	assert.Equal(t, 501, *q.Number)
	assert.Equal(t, "501. Soru metni", q.Text)
	assert.Equal(t, []string{"A) Birinci", "B) İkinci", "C) Üçüncü", "D) Dördüncü"}, q.Choices)
	assert.Equal(t, 2, q.CorrectAnswer)
}

func TestParseStrict_TrimsWhitespaceAndCarriageReturns(t *testing.T) {
	raw := "  7. Baret ne işe yarar?  \r\n" +
		" a) Başı korur\r\n" +
		"b) Eli korur\r\n" +
		"c) Ayağı korur\r\n" +
		"d) Gözü korur \r\n" +
		"  a \r\n"

	questions := parser.ParseStrict(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, "7. Baret ne işe yarar?", questions[0].Text)
	assert.Equal(t, "a) Başı korur", questions[0].Choices[0])
	assert.Equal(t, "d) Gözü korur", questions[0].Choices[3])
	assert.Equal(t, 0, questions[0].CorrectAnswer)
}

func TestParseStrict_NumberAbsent(t *testing.T) {
	raw := record("Soru numarasız", "A) x", "B) y", "C) z", "D) w", "B")

	questions := parser.ParseStrict(raw)
	require.Len(t, questions, 1)
	assert.Nil(t, questions[0].Number)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
}

func TestParseStrict_DesignatorWithoutMatchSkipsBlock(t *testing.T) {
	raw := record(
		"1. Birinci soru", "A) x", "B) y", "C) z", "D) w", "E",
		"2. İkinci soru", "A) x", "B) y", "C) z", "D) w", "D",
	)

	questions := parser.ParseStrict(raw)
	require.Len(t, questions, 1)
	require.NotNil(t, questions[0].Number)
	assert.Equal(t, 2, *questions[0].Number)
	assert.Equal(t, 3, questions[0].CorrectAnswer)
}

func TestParseStrict_FirstPrefixMatchWins(t *testing.T) {
	raw := record("3. Soru", "AB) x", "A) y", "C) z", "D) w", "a")

	questions := parser.ParseStrict(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, 0, questions[0].CorrectAnswer)
}

func TestParseStrict_DiscardsEmptyQuestionAndDesignator(t *testing.T) {
	raw := record(
		"   ", "A) x", "B) y", "C) z", "D) w", "A",
		"4. Soru", "A) x", "B) y", "C) z", "D) w", "   ",
	)

	assert.Empty(t, parser.ParseStrict(raw))
}

func TestParseStrict_IgnoresTrailingIncompleteRecord(t *testing.T) {
	raw := wellFormed + "\n" + record("502. Yarım", "A) x", "B) y", "C) z")

	questions := parser.ParseStrict(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, 501, *questions[0].Number)
}

func TestParseStrict_MalformedBlockDesynchronizes(t *testing.T) {
	// The first record is missing one choice, so every later block is shifted.
	raw := record(
		"1. Soru", "A) x", "B) y", "C) z", "A",
		"2. Soru", "A) x", "B) y", "C) z", "D) w", "A",
	)

	assert.Empty(t, parser.ParseStrict(raw))
}

func TestParseResync_RecoversAfterMalformedRecord(t *testing.T) {
	raw := record(
		"1. Soru", "A) x", "B) y", "C) z", "A",
		"2. Soru", "A) x", "B) y", "C) z", "D) w", "B",
		"",
		"3. Soru", "A) x", "B) y", "C) z", "D) w", "Q",
		"4. Soru", "A) x", "B) y", "C) z", "D) w", "D",
	)

	questions := parser.ParseResync(raw)
	require.Len(t, questions, 2)
	assert.Equal(t, 2, *questions[0].Number)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, 4, *questions[1].Number)
	assert.Equal(t, 3, questions[1].CorrectAnswer)
}

func TestParseResync_MatchesStrictOnCleanInput(t *testing.T) {
	raw := record(
		"10. Soru", "A) x", "B) y", "C) z", "D) w", "A",
		"11. Soru", "A) x", "B) y", "C) z", "D) w", "C",
	)

	assert.Equal(t, parser.ParseStrict(raw), parser.ParseResync(raw))
}

func TestParseResync_SkipsUnnumberedQuestions(t *testing.T) {
	raw := record(
		"Numarasız soru", "A) x", "B) y", "C) z", "D) w", "B",
		"2. Soru", "A) x", "B) y", "C) z", "D) w", "C",
	)

	strict := parser.ParseStrict(raw)
	require.Len(t, strict, 2)
	assert.Nil(t, strict[0].Number)

	resync := parser.ParseResync(raw)
	require.Len(t, resync, 1)
	assert.Equal(t, 2, *resync[0].Number)
}

func TestNew(t *testing.T) {
	p, err := parser.New("")
	require.NoError(t, err)
	assert.Equal(t, parser.ModeStrict, p.Mode())

	p, err = parser.New(parser.ModeResync)
	require.NoError(t, err)
	assert.Equal(t, parser.ModeResync, p.Mode())

	_, err = parser.New("fuzzy")
	assert.Error(t, err)
}
