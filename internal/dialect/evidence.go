package dialect

import "pylift/internal/source"

// Hint is one piece of evidence pointing at a dialect. It is not a
// diagnostic; hints only feed classification.
type Hint struct {
	Dialect Kind
	Score   int
	Reason  string
	Span    source.Span
}

// Evidence aggregates the hints collected for one file.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates an empty container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}
