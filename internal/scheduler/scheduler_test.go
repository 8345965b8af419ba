package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	mu    sync.Mutex
	count int
}

func (r *countingRefresher) RefreshCatalog(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

func (r *countingRefresher) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func TestSchedulerRunsImmediateRefresh(t *testing.T) {
	refresher := &countingRefresher{}
	sched := New(refresher, time.Hour)

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		return refresher.Count() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStops(t *testing.T) {
	refresher := &countingRefresher{}
	sched := New(refresher, time.Hour)

	require.NoError(t, sched.Start(context.Background()))
	sched.Stop()
}
