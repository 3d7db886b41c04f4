package logmeal

// BestMatch selects the single highest-confidence candidate across the
// whole recognition forest, descending into subclasses so a more specific
// nested candidate can outrank its own parent. Traversal is pre-order and
// only a strictly greater probability replaces the running best, so ties
// resolve to the first candidate encountered. Returns nil when the forest
// holds no candidates at all.
func BestMatch(groups []SegmentGroup) *Candidate {
	var best *Candidate
	bestProb := -1.0
	for i := range groups {
		best, bestProb = foldBest(groups[i].RecognitionResults, best, bestProb)
	}
	return best
}

func foldBest(candidates []Candidate, best *Candidate, bestProb float64) (*Candidate, float64) {
	for i := range candidates {
		c := &candidates[i]
		if c.Probability > bestProb {
			best, bestProb = c, c.Probability
		}
		if len(c.Subclasses) > 0 {
			best, bestProb = foldBest(c.Subclasses, best, bestProb)
		}
	}
	return best, bestProb
}
