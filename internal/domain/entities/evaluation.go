package entities

// Classification is the rendering class of a single choice.
type Classification string

const (
	Correct   Classification = "correct"
	Incorrect Classification = "incorrect"
	Neutral   Classification = "neutral"
)

// ChoiceMark pairs a choice index with its classification.
type ChoiceMark struct {
	Index          int
	Classification Classification
}
