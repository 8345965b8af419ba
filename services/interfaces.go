package services

import (
	"context"

	"github.com/scholarlink/recommender/model"
)

// ResultState distinguishes "still loading" from "loaded, zero matches" for
// the display surface consuming a recommendation result.
type ResultState string

const (
	ResultStateLoading ResultState = "loading"
	ResultStateReady   ResultState = "ready"
	ResultStateFailed  ResultState = "failed"
)

// RecommendationQuery identifies the student to recommend for and an optional
// free-text filter applied to offer program names.
type RecommendationQuery struct {
	StudentID  string `json:"student_id"`
	SearchTerm string `json:"search_term"`
}

// RecommendationResult is the filtered, ranked sequence of offers shown to a
// student. Hits are sorted descending by similarity; offers with equal
// similarity retain their relative catalog order.
type RecommendationResult struct {
	Hits    []model.ScoredOffer `json:"hits"`
	Total   int                 `json:"total"`
	Took    int64               `json:"took"` // milliseconds
	QueryID string              `json:"query_id"`
	State   ResultState         `json:"state"`
}

// Scorer computes an affinity score in [0, 1] between a student's school set
// and an offer's eligible-school set. Implementations must treat a nil or
// empty set on either side as a non-match (score 0.0), never as an error.
// Remote implementations may fail per call; the engine isolates such failures
// to the single offer being scored.
type Scorer interface {
	Score(ctx context.Context, studentSchools, offerSchools []string) (float64, error)
	Name() string
}

// CatalogSource provides read access to the external document store holding
// students and scholarship offers.
type CatalogSource interface {
	GetStudent(ctx context.Context, id string) (model.Student, error)
	GetAllOffers(ctx context.Context) ([]model.Offer, error)
}

// Recommender produces the ranked offer list for a student.
type Recommender interface {
	Recommend(ctx context.Context, query RecommendationQuery) (RecommendationResult, error)
}
