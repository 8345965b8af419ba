// Package scoring provides the similarity scorers used by the recommendation
// engine. Two implementations exist: an in-process Jaccard scorer and a
// remote sentence-embedding scorer. They are selected by configuration and
// satisfy the same services.Scorer contract.
package scoring

import "context"

// Jaccard scores the overlap between a student's school set and an offer's
// eligible-school set using the Jaccard index |A ∩ B| / |A ∪ B|.
//
// Matching is case-sensitive and exact; no normalization or fuzzy matching of
// school names is performed.
type Jaccard struct{}

// NewJaccard creates the local set-based scorer.
func NewJaccard() *Jaccard {
	return &Jaccard{}
}

// Name identifies the scorer in logs and results.
func (*Jaccard) Name() string { return "jaccard" }

// Score computes the Jaccard index of the two school sets in O(|A|+|B|) using
// hash-based membership. When both sets are empty the ratio is 0/0; that case
// is defined as 0.0 (no match) rather than NaN. Duplicate entries within a
// set are ignored. The error is always nil; it exists to satisfy the Scorer
// contract shared with remote scorers.
func (*Jaccard) Score(_ context.Context, studentSchools, offerSchools []string) (float64, error) {
	student := make(map[string]struct{}, len(studentSchools))
	for _, school := range studentSchools {
		student[school] = struct{}{}
	}

	offer := make(map[string]struct{}, len(offerSchools))
	intersection := 0
	for _, school := range offerSchools {
		if _, dup := offer[school]; dup {
			continue
		}
		offer[school] = struct{}{}
		if _, ok := student[school]; ok {
			intersection++
		}
	}

	unionSize := len(student) + len(offer) - intersection
	if unionSize == 0 {
		return 0.0, nil
	}
	return float64(intersection) / float64(unionSize), nil
}
