package domain

// Classification is the classifier's verdict for one free-text complaint.
// Confidence is 1.0 for an exact keyword or pattern hit and in (0,1) for a
// fuzzy match; callers decide whether a fuzzy score is high enough to act on.
type Classification struct {
	Domain     string
	Confidence float64
}

// Exact reports whether the classification came from a direct keyword or
// pattern hit rather than a fuzzy similarity.
func (c Classification) Exact() bool {
	return c.Confidence == 1.0
}
