// Package recommend implements the offer-recommendation engine: it scores
// every offer in the catalog against the student's school affiliation,
// filters by positive similarity and a free-text program-name match, and
// returns the ranked result.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/scholarlink/recommender/model"
	"github.com/scholarlink/recommender/services"
)

// Service implements the recommendation logic. It fulfills the
// services.Recommender interface.
type Service struct {
	catalog     services.CatalogSource
	scorer      services.Scorer
	maxInFlight int64
}

// NewService creates a new recommendation Service. maxInFlight caps the
// number of offers scored concurrently, which bounds fan-out against a
// remote, rate-limited scorer.
func NewService(catalog services.CatalogSource, scorer services.Scorer, maxInFlight int) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog source cannot be nil")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Service{
		catalog:     catalog,
		scorer:      scorer,
		maxInFlight: int64(maxInFlight),
	}, nil
}

// Recommend fetches the student and the offer catalog, scores every offer,
// and returns the filtered, ranked result. Upstream fetch failures return a
// failed-state result together with the error so callers can distinguish
// "not loaded" from "loaded, zero matches".
func (s *Service) Recommend(ctx context.Context, query services.RecommendationQuery) (services.RecommendationResult, error) {
	startTime := time.Now()
	queryID := uuid.New().String()

	student, err := s.catalog.GetStudent(ctx, query.StudentID)
	if err != nil {
		return failedResult(queryID, startTime), fmt.Errorf("fetching student '%s': %w", query.StudentID, err)
	}

	offers, err := s.catalog.GetAllOffers(ctx)
	if err != nil {
		return failedResult(queryID, startTime), fmt.Errorf("fetching offer catalog: %w", err)
	}

	scores := s.scoreOffers(ctx, student.Schools(), offers)
	hits := rank(offers, scores, query.SearchTerm)

	logrus.WithFields(logrus.Fields{
		"component":  "recommend",
		"scorer":     s.scorer.Name(),
		"student_id": query.StudentID,
		"offers":     len(offers),
		"hits":       len(hits),
	}).Debug("Recommendation cycle complete")

	return services.RecommendationResult{
		Hits:    hits,
		Total:   len(hits),
		Took:    time.Since(startTime).Milliseconds(),
		QueryID: queryID,
		State:   services.ResultStateReady,
	}, nil
}

// scoreOffers computes one similarity per offer with bounded concurrency.
// Each offer's score is independent; a single offer's scoring failure is
// logged and treated as a non-match, never aborting the batch. The result
// slice is indexed by catalog position, so completion order does not affect
// the final ordering.
func (s *Service) scoreOffers(ctx context.Context, studentSchools []string, offers []model.Offer) []float64 {
	scores := make([]float64, len(offers))
	sem := semaphore.NewWeighted(s.maxInFlight)
	var g errgroup.Group

	for i, offer := range offers {
		i, offer := i, offer
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil // cycle cancelled; scores stay 0
			}
			defer sem.Release(1)

			score, err := s.scorer.Score(ctx, studentSchools, offer.SchoolsOffered)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"component": "recommend",
					"offer_id":  offer.ID,
					"scorer":    s.scorer.Name(),
				}).Warnf("Scoring failed, excluding offer: %v", err)
				return nil
			}
			scores[i] = score
			return nil
		})
	}

	_ = g.Wait()
	return scores
}

// rank retains offers with a positive similarity whose program name contains
// searchTerm case-insensitively (an empty term matches everything), then
// sorts descending by similarity. The sort is explicitly stable: offers with
// equal similarity keep their relative catalog order.
func rank(offers []model.Offer, scores []float64, searchTerm string) []model.ScoredOffer {
	hits := make([]model.ScoredOffer, 0, len(offers))
	for i, offer := range offers {
		if scores[i] <= 0.0 {
			continue
		}
		if !matchesSearch(offer.ProgramName, searchTerm) {
			continue
		}
		hits = append(hits, model.ScoredOffer{Offer: offer, Similarity: scores[i]})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	return hits
}

func matchesSearch(programName, searchTerm string) bool {
	if searchTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(programName), strings.ToLower(searchTerm))
}

func failedResult(queryID string, startTime time.Time) services.RecommendationResult {
	return services.RecommendationResult{
		Hits:    []model.ScoredOffer{},
		Total:   0,
		Took:    time.Since(startTime).Milliseconds(),
		QueryID: queryID,
		State:   services.ResultStateFailed,
	}
}
