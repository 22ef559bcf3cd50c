package entities

// Progress is the viewed/total counter shown next to a question.
type Progress struct {
	Viewed int // cursor + 1
	Total  int // length of the session order
}

// Complete reports whether the cursor sits on the last question.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Viewed >= p.Total
}

// Percentage returns the share of viewed questions in percent.
func (p Progress) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Viewed) / float64(p.Total) * 100
}
