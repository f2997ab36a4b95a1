// Package aggregator pulls active sources concurrently, normalizes their entries and merges them
// into a single ranked list. Per-source failures are absorbed and only drive the health policy.
package aggregator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsreel/pkg/content"
	"github.com/umputun/newsreel/pkg/domain"
	"github.com/umputun/newsreel/pkg/feed"
)

//go:generate moq -out mocks/registry.go -pkg mocks -skip-ensure -fmt goimports . Registry
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// defaults used when Config leaves a value unset
const (
	DefaultLimit      = 10
	DefaultMaxWorkers = 5
)

// ErrRegistry is returned when active sources can't be loaded, the only failure Aggregate reports
var ErrRegistry = errors.New("source registry unavailable")

// Registry provides active sources and persists their health
type Registry interface {
	ListActive(ctx context.Context) ([]domain.Source, error)
	Save(ctx context.Context, src *domain.Source) error
}

// Fetcher retrieves raw entries of a source document
type Fetcher interface {
	Fetch(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error)
}

// Config holds aggregator dependencies and tuning
type Config struct {
	Registry   Registry
	Fetcher    Fetcher
	Limit      int
	MaxWorkers int
	Health     HealthPolicy
	Now        func() time.Time
}

// Aggregator runs one aggregation pass at a time per call, calls may overlap
type Aggregator struct {
	registry   Registry
	fetcher    Fetcher
	limit      int
	maxWorkers int
	health     HealthPolicy
	now        func() time.Time
	dates      *content.DateParser
	locks      keyedMutex
}

// New makes an aggregator, unset config values get defaults
func New(cfg Config) *Aggregator {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.Health.StaleAfter <= 0 {
		cfg.Health.StaleAfter = DefaultStaleAfter
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{
		registry:   cfg.Registry,
		fetcher:    cfg.Fetcher,
		limit:      cfg.Limit,
		maxWorkers: cfg.MaxWorkers,
		health:     cfg.Health,
		now:        cfg.Now,
		dates:      &content.DateParser{Now: cfg.Now},
		locks:      keyedMutex{locks: map[int64]*sync.Mutex{}},
	}
}

// Aggregate loads active sources and runs aggregation over them
func (a *Aggregator) Aggregate(ctx context.Context) ([]domain.NewsItem, error) {
	sources, err := a.registry.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistry, err)
	}
	return a.Run(ctx, sources)
}

// Run fetches all sources concurrently, records their health and returns at most limit items,
// newest first. Failed sources contribute nothing. The only error is ctx.Err() on cancellation,
// in which case sources still in flight are left unrecorded.
func (a *Aggregator) Run(ctx context.Context, sources []domain.Source) ([]domain.NewsItem, error) {
	st := time.Now()
	srcs := slices.Clone(sources)
	perSource := make([][]domain.NewsItem, len(srcs))

	var g errgroup.Group
	g.SetLimit(a.maxWorkers)
	for i := range srcs {
		g.Go(func() error {
			perSource[i] = a.processSource(ctx, &srcs[i])
			return nil
		})
	}
	_ = g.Wait() // tasks never fail, errors are absorbed per source

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []domain.NewsItem
	for _, items := range perSource {
		all = append(all, items...)
	}

	valid := make([]domain.NewsItem, 0, len(all))
	for _, item := range all {
		if item.IsValid() {
			valid = append(valid, item)
		}
	}

	slices.SortStableFunc(valid, func(x, y domain.NewsItem) int {
		return cmp.Compare(y.PubDate.UnixNano(), x.PubDate.UnixNano())
	})
	if len(valid) > a.limit {
		valid = valid[:a.limit]
	}

	lgr.Printf("[INFO] aggregated %d items from %d sources (%d mapped) in %v",
		len(valid), len(srcs), len(all), time.Since(st).Truncate(time.Millisecond))
	return valid, nil
}

// TestOne fetches a single document without touching the registry
func (a *Aggregator) TestOne(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error) {
	items, err := a.fetcher.Fetch(ctx, url, dialect)
	if err != nil {
		return nil, fmt.Errorf("test feed %s: %w", url, err)
	}
	return items, nil
}

// processSource fetches and maps one source, then records the outcome
func (a *Aggregator) processSource(ctx context.Context, src *domain.Source) []domain.NewsItem {
	if ctx.Err() != nil {
		return nil
	}

	raws, err := a.fetcher.Fetch(ctx, src.URL, src.Dialect)
	if err != nil && ctx.Err() != nil {
		return nil // abandoned by cancellation, not a source failure
	}

	outcome := FetchOutcome{Err: err, At: a.now()}
	var items []domain.NewsItem
	if err != nil {
		lgr.Printf("[WARN] failed to fetch source %q (%s): %v", src.Name, src.URL, err)
	} else {
		profile := feed.ProfileFor(src.Dialect)
		items = make([]domain.NewsItem, 0, len(raws))
		for _, raw := range raws {
			item := a.mapItem(*src, profile, raw)
			if !item.HasText() {
				continue
			}
			items = append(items, item)
		}
		outcome.Items = len(items)
		lgr.Printf("[DEBUG] source %q: %d of %d items mapped", src.Name, len(items), len(raws))
	}

	a.record(ctx, src, outcome)
	return items
}

// record applies the health policy and persists the source, serialized per source id
func (a *Aggregator) record(ctx context.Context, src *domain.Source, outcome FetchOutcome) {
	unlock := a.locks.lock(src.ID)
	defer unlock()

	since := "never"
	if src.LastFetched != nil {
		since = src.LastFetched.Format(time.RFC3339)
	}
	if a.health.Apply(src, outcome) {
		lgr.Printf("[WARN] source %q deactivated, no successful fetch since %s", src.Name, since)
	}
	if err := a.registry.Save(ctx, src); err != nil {
		lgr.Printf("[WARN] failed to save source %q health: %v", src.Name, err)
	}
}

// keyedMutex hands out one mutex per key
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (k *keyedMutex) lock(key int64) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
