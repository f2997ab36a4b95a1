package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsreel/pkg/domain"
)

// DefaultTimeout bounds a single feed request
const DefaultTimeout = 5 * time.Second

// maxDocumentSize limits the feed body we are willing to parse
const maxDocumentSize = 10 * 1024 * 1024

// Fetcher retrieves syndication documents over HTTP and flattens their entries
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewFetcher creates a new feed fetcher, zero timeout means DefaultTimeout
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Fetch downloads the document at url and extracts its entries with the dialect profile.
// A document without entries is not an error.
func (f *Fetcher) Fetch(ctx context.Context, url string, dialect domain.Dialect) ([]RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(io.LimitReader(body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	profile := ProfileFor(dialect)
	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		items = append(items, toRawItem(item, profile))
	}

	if len(items) == 0 {
		lgr.Printf("[WARN] no items found in feed %s", url)
	}
	return items, nil
}

// fetch retrieves content from a URL
func (f *Fetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addFeedHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
