package domain

import (
	"slices"
	"time"
)

// Dialect selects the extraction profile used for a source
type Dialect string

// supported dialects, anything else is treated as DialectStandard
const (
	DialectStandard   Dialect = "standard"
	DialectFeedburner Dialect = "feedburner"
	DialectWordpress  Dialect = "wordpress"
	DialectCustom     Dialect = "custom"
)

// Dialects returns all known dialects
func Dialects() []Dialect {
	return []Dialect{DialectStandard, DialectFeedburner, DialectWordpress, DialectCustom}
}

// Valid reports whether d is one of the known dialects
func (d Dialect) Valid() bool {
	return slices.Contains(Dialects(), d)
}

// Source represents a syndication feed registered for aggregation
type Source struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Dialect     Dialect    `json:"parser"`
	Active      bool       `json:"isActive"`
	LastFetched *time.Time `json:"lastFetched,omitempty"`
	ErrorCount  int        `json:"errorCount"`
	LastError   string     `json:"lastError,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
