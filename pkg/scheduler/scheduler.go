// Package scheduler refreshes the aggregated list periodically and keeps the latest snapshot
package scheduler

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsreel/pkg/domain"
)

//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator

// Aggregator produces the ranked news list
type Aggregator interface {
	Aggregate(ctx context.Context) ([]domain.NewsItem, error)
}

// Scheduler runs aggregation on a ticker and serves the last successful result
type Scheduler struct {
	aggregator     Aggregator
	updateInterval time.Duration
	wg             sync.WaitGroup
	cancel         context.CancelFunc
	refreshMu      sync.Mutex // one refresh at a time

	mu        sync.RWMutex
	items     []domain.NewsItem
	updatedAt time.Time
}

// Params for NewScheduler
type Params struct {
	Aggregator     Aggregator
	UpdateInterval time.Duration // 0 disables the background loop
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	return &Scheduler{
		aggregator:     params.Aggregator,
		updateInterval: params.UpdateInterval,
	}
}

// Start begins the background refresh loop, it does nothing if the update interval is zero
func (s *Scheduler) Start(ctx context.Context) {
	if s.updateInterval <= 0 {
		lgr.Printf("[INFO] scheduler disabled, no update interval set")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.updateWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v", s.updateInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RefreshNow runs aggregation immediately and stores the result as the latest snapshot.
// On failure the previous snapshot is kept and the error returned.
func (s *Scheduler) RefreshNow(ctx context.Context) ([]domain.NewsItem, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	items, err := s.aggregator.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = items
	s.updatedAt = time.Now()
	s.mu.Unlock()
	return slices.Clone(items), nil
}

// Latest returns a copy of the last snapshot and when it was taken, zero time if never refreshed
func (s *Scheduler) Latest() ([]domain.NewsItem, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), s.updatedAt
}

// updateWorker refreshes the snapshot on start and then on every tick
func (s *Scheduler) updateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	items, err := s.RefreshNow(ctx)
	if err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[ERROR] scheduled aggregation failed: %v", err)
		}
		return
	}
	lgr.Printf("[DEBUG] scheduled aggregation done, %d items", len(items))
}
