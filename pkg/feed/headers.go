package feed

import (
	"net/http"
)

// DefaultUserAgent identifies the fetcher as a regular browser, some publishers reject bot agents
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// acceptFeeds is the Accept header for syndication documents
const acceptFeeds = "application/rss+xml,application/xml;q=0.9,*/*;q=0.8"

// addFeedHeaders sets the fixed header set sent with every feed request
func addFeedHeaders(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptFeeds)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}
