package dialect

// Classification is the scored outcome for one file.
type Classification struct {
	Kind            Kind
	Score           int
	TotalScore      int
	Confidence      float64
	ObservedSignals int
}

// Classifier scores evidence and picks the dominant dialect. It applies no
// thresholds of its own; callers decide what confidence they require.
type Classifier struct{}

// Classify aggregates hint scores per dialect. A file with no signals at
// all is Unknown, which callers may treat as already-modern input.
func (Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{Kind: Unknown}
	}

	var scores [kindCount]int
	total := 0
	observed := 0
	for _, h := range e.hints {
		observed++
		if h.Score <= 0 || h.Dialect <= Unknown || h.Dialect >= kindCount {
			continue
		}
		scores[h.Dialect] += h.Score
		total += h.Score
	}

	best := Unknown
	bestScore := 0
	for k := Legacy; k < kindCount; k++ {
		if scores[k] > bestScore {
			best, bestScore = k, scores[k]
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Classification{
		Kind:            best,
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		ObservedSignals: observed,
	}
}
