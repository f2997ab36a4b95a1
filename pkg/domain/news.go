package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ISOLayout is the output layout for publication dates, UTC with milliseconds
const ISOLayout = "2006-01-02T15:04:05.000Z"

// NewsItem is a normalized entry produced by an aggregation run
type NewsItem struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	ImageURL string    `json:"imageUrl,omitempty"`
	PubDate  time.Time `json:"pubDate"`
	Source   string    `json:"source"`
	Link     string    `json:"link"`
	Author   string    `json:"author"`
}

// HasText reports whether both title and content survived normalization
func (n NewsItem) HasText() bool {
	return n.Title != "" && n.Content != ""
}

// IsValid checks the item is complete enough to be shown
func (n NewsItem) IsValid() bool {
	return n.HasText() && n.Link != "" && strings.HasPrefix(n.Link, "http")
}

// MarshalJSON renders PubDate in ISO layout
func (n NewsItem) MarshalJSON() ([]byte, error) {
	type plain NewsItem
	return json.Marshal(struct {
		plain
		PubDate string `json:"pubDate"`
	}{plain: plain(n), PubDate: n.PubDate.UTC().Format(ISOLayout)})
}
