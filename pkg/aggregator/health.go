package aggregator

import (
	"time"

	"github.com/umputun/newsreel/pkg/domain"
)

// DefaultStaleAfter is the grace period after the last successful fetch
const DefaultStaleAfter = 24 * time.Hour

// FetchOutcome is the result of one fetch attempt for a source
type FetchOutcome struct {
	Items int
	Err   error
	At    time.Time
}

// HealthPolicy decides how fetch outcomes change a source record
type HealthPolicy struct {
	StaleAfter time.Duration
}

// Apply updates src with the outcome and reports whether the source was deactivated by it.
// A failure deactivates a source only if it was fetched before and the last success is older than StaleAfter,
// sources that never succeeded stay active. Nothing here reactivates a source.
func (h HealthPolicy) Apply(src *domain.Source, outcome FetchOutcome) (deactivated bool) {
	if outcome.Err == nil {
		at := outcome.At.UTC()
		src.LastFetched = &at
		src.ErrorCount = 0
		src.LastError = ""
		return false
	}

	src.ErrorCount++
	src.LastError = outcome.Err.Error()

	staleAfter := h.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if src.Active && src.LastFetched != nil && outcome.At.Sub(*src.LastFetched) > staleAfter {
		src.Active = false
		return true
	}
	return false
}
