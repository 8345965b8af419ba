package recommend

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scholarlink/recommender/model"
	"github.com/scholarlink/recommender/services"
)

// CatalogInvalidator is implemented by catalog sources that keep a cache of
// the offer catalog and can drop it on demand.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Pipeline recomputes the recommendation result whenever one of its three
// inputs changes: the student, the search term, or the offer catalog. The
// recompute is full, never incremental; inputs are small and recompute cost
// is cheap relative to network latency.
//
// Every input change starts a new cycle under a fresh epoch and cancels the
// previous cycle's context. A cycle publishes its result exactly once, after
// all per-offer scoring has settled; a cycle whose epoch has been superseded
// by the time it finishes is discarded, so late-arriving responses can never
// corrupt a newer result set.
type Pipeline struct {
	service *Service
	catalog services.CatalogSource

	mu         sync.Mutex
	studentID  string
	searchTerm string
	epoch      uint64
	cancel     context.CancelFunc
	current    services.RecommendationResult
}

// NewPipeline creates a pipeline over the given recommendation service.
// The result starts in the loading state until the first cycle publishes.
func NewPipeline(service *Service, catalog services.CatalogSource) *Pipeline {
	return &Pipeline{
		service: service,
		catalog: catalog,
		current: services.RecommendationResult{
			Hits:  []model.ScoredOffer{},
			State: services.ResultStateLoading,
		},
	}
}

// SetStudent changes the student the pipeline recommends for and starts a
// new cycle.
func (p *Pipeline) SetStudent(studentID string) {
	p.mu.Lock()
	p.studentID = studentID
	p.mu.Unlock()
	p.Recompute()
}

// SetSearchTerm changes the free-text filter and starts a new cycle.
func (p *Pipeline) SetSearchTerm(term string) {
	p.mu.Lock()
	p.searchTerm = term
	p.mu.Unlock()
	p.Recompute()
}

// RefreshCatalog drops any cached offer catalog and starts a new cycle.
// It is called by the periodic scheduler and by the manual refresh endpoint.
func (p *Pipeline) RefreshCatalog(ctx context.Context) {
	if invalidator, ok := p.catalog.(CatalogInvalidator); ok {
		if err := invalidator.Invalidate(ctx); err != nil {
			logrus.WithField("component", "pipeline").Warnf("Catalog invalidation failed: %v", err)
		}
	}
	p.Recompute()
}

// Recompute starts a new cycle: it bumps the epoch, cancels the in-flight
// cycle, and recomputes the result from scratch in the background.
func (p *Pipeline) Recompute() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.epoch++
	epoch := p.epoch
	studentID := p.studentID
	searchTerm := p.searchTerm
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	if studentID == "" {
		// Nothing to recommend for yet; stay in the loading state.
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	go p.runCycle(ctx, epoch, services.RecommendationQuery{
		StudentID:  studentID,
		SearchTerm: searchTerm,
	})
}

func (p *Pipeline) runCycle(ctx context.Context, epoch uint64, query services.RecommendationQuery) {
	result, err := p.service.Recommend(ctx, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component":  "pipeline",
			"student_id": query.StudentID,
		}).Errorf("Recommendation cycle failed: %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if epoch != p.epoch {
		logrus.WithFields(logrus.Fields{
			"component":   "pipeline",
			"stale_epoch": epoch,
			"epoch":       p.epoch,
		}).Debug("Discarding result from superseded cycle")
		return
	}
	p.current = result
}

// Current returns the latest published result. Before the first cycle
// publishes, the result carries the loading state with no hits.
func (p *Pipeline) Current() services.RecommendationResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Stop cancels any in-flight cycle.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.epoch++ // any cycle still running publishes against a dead epoch
}
