package recommend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarlink/recommender/internal/scoring"
	"github.com/scholarlink/recommender/model"
	"github.com/scholarlink/recommender/services"
)

// gatedCatalog blocks each GetAllOffers call until released, returning a
// different catalog per call so tests can tell which cycle's result won.
type gatedCatalog struct {
	mu              sync.Mutex
	student         model.Student
	schoolByStudent map[string]string
	perCall         [][]model.Offer
	calls           int
	gate            chan struct{}
	invalidated     int
}

func (g *gatedCatalog) GetStudent(_ context.Context, id string) (model.Student, error) {
	if school, ok := g.schoolByStudent[id]; ok {
		return model.Student{ID: id, School: school}, nil
	}
	return g.student, nil
}

func (g *gatedCatalog) GetAllOffers(_ context.Context) ([]model.Offer, error) {
	g.mu.Lock()
	call := g.calls
	g.calls++
	g.mu.Unlock()

	if g.gate != nil {
		<-g.gate
	}
	if call >= len(g.perCall) {
		call = len(g.perCall) - 1
	}
	return g.perCall[call], nil
}

func (g *gatedCatalog) Invalidate(_ context.Context) error {
	g.mu.Lock()
	g.invalidated++
	g.mu.Unlock()
	return nil
}

func newPipelineUnderTest(t *testing.T, catalog services.CatalogSource) *Pipeline {
	t.Helper()
	svc, err := NewService(catalog, scoring.NewJaccard(), 4)
	require.NoError(t, err)
	return NewPipeline(svc, catalog)
}

func TestPipelineInitialStateIsLoading(t *testing.T) {
	catalog := &gatedCatalog{perCall: [][]model.Offer{nil}}
	pipeline := newPipelineUnderTest(t, catalog)

	current := pipeline.Current()
	assert.Equal(t, services.ResultStateLoading, current.State)
	assert.Empty(t, current.Hits)
}

func TestPipelineNoStudentStaysLoading(t *testing.T) {
	catalog := &gatedCatalog{perCall: [][]model.Offer{nil}}
	pipeline := newPipelineUnderTest(t, catalog)

	pipeline.SetSearchTerm("merit")
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, services.ResultStateLoading, pipeline.Current().State)
	assert.Zero(t, catalog.calls)
}

func TestPipelinePublishesAfterCycle(t *testing.T) {
	catalog := &gatedCatalog{
		student: model.Student{ID: "s1", School: "State U"},
		perCall: [][]model.Offer{
			{{ID: "1", ProgramName: "Merit", SchoolsOffered: []string{"State U"}}},
		},
	}
	pipeline := newPipelineUnderTest(t, catalog)

	pipeline.SetStudent("s1")

	assert.Eventually(t, func() bool {
		return pipeline.Current().State == services.ResultStateReady
	}, time.Second, 5*time.Millisecond)

	current := pipeline.Current()
	require.Len(t, current.Hits, 1)
	assert.Equal(t, "1", current.Hits[0].Offer.ID)
}

func TestPipelineDiscardsStaleCycle(t *testing.T) {
	gate := make(chan struct{})
	catalog := &gatedCatalog{
		schoolByStudent: map[string]string{
			"s-old": "Old U",
			"s-new": "New U",
		},
		perCall: [][]model.Offer{
			{
				{ID: "old", ProgramName: "Old Match", SchoolsOffered: []string{"Old U"}},
				{ID: "new", ProgramName: "New Match", SchoolsOffered: []string{"New U"}},
			},
		},
		gate: gate,
	}
	pipeline := newPipelineUnderTest(t, catalog)

	pipeline.SetStudent("s-old") // cycle 1
	pipeline.SetStudent("s-new") // cycle 2, supersedes cycle 1

	// Release both blocked fetches; completion order is now nondeterministic,
	// but only the newest epoch may publish.
	close(gate)

	assert.Eventually(t, func() bool {
		return pipeline.Current().State == services.ResultStateReady
	}, time.Second, 5*time.Millisecond)

	// Give the stale cycle time to finish and (incorrectly) publish.
	time.Sleep(50 * time.Millisecond)

	current := pipeline.Current()
	require.Len(t, current.Hits, 1)
	assert.Equal(t, "new", current.Hits[0].Offer.ID)
}

func TestPipelineSearchTermTriggersRecompute(t *testing.T) {
	catalog := &gatedCatalog{
		student: model.Student{ID: "s1", School: "State U"},
		perCall: [][]model.Offer{
			{
				{ID: "1", ProgramName: "Merit Scholarship", SchoolsOffered: []string{"State U"}},
				{ID: "2", ProgramName: "Need Grant", SchoolsOffered: []string{"State U"}},
			},
		},
	}
	pipeline := newPipelineUnderTest(t, catalog)

	pipeline.SetStudent("s1")
	assert.Eventually(t, func() bool {
		return len(pipeline.Current().Hits) == 2
	}, time.Second, 5*time.Millisecond)

	pipeline.SetSearchTerm("grant")
	assert.Eventually(t, func() bool {
		hits := pipeline.Current().Hits
		return len(hits) == 1 && hits[0].Offer.ID == "2"
	}, time.Second, 5*time.Millisecond)
}

func TestPipelineRefreshInvalidatesCatalog(t *testing.T) {
	catalog := &gatedCatalog{
		student: model.Student{ID: "s1", School: "State U"},
		perCall: [][]model.Offer{nil},
	}
	pipeline := newPipelineUnderTest(t, catalog)
	pipeline.SetStudent("s1")

	pipeline.RefreshCatalog(context.Background())

	assert.Eventually(t, func() bool {
		catalog.mu.Lock()
		defer catalog.mu.Unlock()
		return catalog.invalidated == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPipelineStopPreventsLatePublish(t *testing.T) {
	gate := make(chan struct{})
	catalog := &gatedCatalog{
		student: model.Student{ID: "s1", School: "State U"},
		perCall: [][]model.Offer{
			{{ID: "1", ProgramName: "Merit", SchoolsOffered: []string{"State U"}}},
		},
		gate: gate,
	}
	pipeline := newPipelineUnderTest(t, catalog)

	pipeline.SetStudent("s1")
	pipeline.Stop()
	close(gate)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, services.ResultStateLoading, pipeline.Current().State)
}
