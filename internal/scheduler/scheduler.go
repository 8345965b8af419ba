// Package scheduler wires up the cron job that periodically refreshes the
// offer catalog feeding the recommendation pipeline.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher is the slice of the pipeline the scheduler drives.
type Refresher interface {
	RefreshCatalog(ctx context.Context)
}

// Scheduler wraps robfig/cron and manages the periodic refresh loop.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 15m"
}

// New creates a Scheduler that fires once per interval.
func New(refresher Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the job and starts the scheduler. A refresh also runs
// immediately so the pipeline is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logrus.WithFields(logrus.Fields{
		"component": "scheduler",
		"spec":      s.spec,
	}).Info("Catalog refresh scheduler started")

	go s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logrus.WithField("component", "scheduler").Info("Catalog refresh scheduler stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	logrus.WithField("component", "scheduler").Debug("Catalog refresh triggered")
	s.refresher.RefreshCatalog(ctx)
}
