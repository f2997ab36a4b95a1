package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsreel/pkg/aggregator"
	"github.com/umputun/newsreel/pkg/domain"
	"github.com/umputun/newsreel/pkg/feed"
	"github.com/umputun/newsreel/pkg/repository"
	"github.com/umputun/newsreel/server/mocks"
)

var testItems = []domain.NewsItem{
	{
		Title:    "Markets rally",
		Content:  "Sensex closes higher",
		ImageURL: "https://img.example.com/a.jpg",
		PubDate:  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Source:   "Mint",
		Link:     "https://example.com/markets",
		Author:   "Mint",
	},
	{
		Title:   "Monsoon update",
		Content: "Rain expected",
		PubDate: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		Source:  "NDTV",
		Link:    "https://example.com/monsoon",
		Author:  "NDTV",
	},
}

// testServer creates a server with the given params, empty mocks fill in missing dependencies
func testServer(t *testing.T, params Params) *Server {
	t.Helper()
	if params.Sources == nil {
		params.Sources = &mocks.SourceStoreMock{}
	}
	if params.Settings == nil {
		params.Settings = &mocks.SettingsStoreMock{}
	}
	if params.Aggregator == nil {
		params.Aggregator = &mocks.AggregatorMock{}
	}
	if params.Scheduler == nil {
		params.Scheduler = &mocks.SchedulerMock{
			LatestFunc: func() ([]domain.NewsItem, time.Time) { return nil, time.Time{} },
		}
	}
	if params.Version == "" {
		params.Version = "test"
	}
	if params.BaseURL == "" {
		params.BaseURL = "http://localhost:8080"
	}
	params.DisplayDefaults = domain.DefaultDisplaySettings()
	return New(params)
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Listen: ":8080", Version: "1.0.0"})
	require.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.Version)
	assert.Equal(t, 30*time.Second, srv.Timeout, "default timeout")
	assert.False(t, srv.Debug)
	assert.NotNil(t, srv.generator)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := testServer(t, Params{Listen: fmt.Sprintf("127.0.0.1:%d", port), Timeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test code
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	srv := testServer(t, Params{Listen: listener.Addr().String()})
	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestServer_Middleware(t *testing.T) {
	srv := testServer(t, Params{Version: "1.2.3"})

	t.Run("ping", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/ping", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("app info headers", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/status", "")
		assert.Equal(t, "newsreel", rec.Header().Get("App-Name"))
		assert.Equal(t, "1.2.3", rec.Header().Get("App-Version"))
	})

	t.Run("size limit", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("x", 2*1024*1024) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feeds", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/unknown", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Status(t *testing.T) {
	updated := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	sched := &mocks.SchedulerMock{
		LatestFunc: func() ([]domain.NewsItem, time.Time) { return testItems, updated },
	}
	srv := testServer(t, Params{Scheduler: sched, Version: "1.0.0"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
	assert.InDelta(t, 2, resp["items"], 0)
	assert.Equal(t, "2024-03-15T10:00:00Z", resp["updated"])
	assert.NotEmpty(t, resp["time"])
}

func TestServer_News(t *testing.T) {
	t.Run("aggregated list", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			AggregateFunc: func(ctx context.Context) ([]domain.NewsItem, error) { return testItems, nil },
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Markets rally", resp[0]["title"])
		assert.Equal(t, "2024-03-15T10:00:00.000Z", resp[0]["pubDate"])
		assert.Equal(t, "https://img.example.com/a.jpg", resp[0]["imageUrl"])
		assert.Equal(t, "NDTV", resp[1]["source"])
		assert.Len(t, agg.AggregateCalls(), 1)
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			AggregateFunc: func(ctx context.Context) ([]domain.NewsItem, error) { return nil, nil },
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("registry failure", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			AggregateFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
				return nil, fmt.Errorf("%w: %w", aggregator.ErrRegistry, errors.New("db down"))
			},
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeError(t, rec), "source registry unavailable")
	})
}

func TestServer_LatestNews(t *testing.T) {
	t.Run("snapshot", func(t *testing.T) {
		updated := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		sched := &mocks.SchedulerMock{
			LatestFunc: func() ([]domain.NewsItem, time.Time) { return testItems[:1], updated },
		}
		srv := testServer(t, Params{Scheduler: sched})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news/latest", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items   []map[string]any `json:"items"`
			Updated time.Time        `json:"updated"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Markets rally", resp.Items[0]["title"])
		assert.Equal(t, updated, resp.Updated)
		assert.Empty(t, sched.RefreshNowCalls())
	})

	t.Run("no snapshot yet", func(t *testing.T) {
		srv := testServer(t, Params{})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news/latest", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	})

	t.Run("forced refresh", func(t *testing.T) {
		var refreshed bool
		sched := &mocks.SchedulerMock{
			RefreshNowFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
				refreshed = true
				return testItems, nil
			},
			LatestFunc: func() ([]domain.NewsItem, time.Time) {
				if !refreshed {
					return nil, time.Time{}
				}
				return testItems, time.Now()
			},
		}
		srv := testServer(t, Params{Scheduler: sched})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news/latest?refresh=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, sched.RefreshNowCalls(), 1)
		assert.Contains(t, rec.Body.String(), "Monsoon update")
	})

	t.Run("refresh failure", func(t *testing.T) {
		sched := &mocks.SchedulerMock{
			RefreshNowFunc: func(ctx context.Context) ([]domain.NewsItem, error) {
				return nil, aggregator.ErrRegistry
			},
		}
		srv := testServer(t, Params{Scheduler: sched})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/news/latest?refresh=true", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, sched.LatestCalls())
	})
}

func TestServer_ListFeeds(t *testing.T) {
	t.Run("all sources", func(t *testing.T) {
		store := &mocks.SourceStoreMock{
			ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) {
				return []domain.Source{
					{ID: 1, Name: "Mint", URL: "https://mint.example.com/rss", Dialect: domain.DialectStandard, Active: true},
					{ID: 2, Name: "NDTV", URL: "https://ndtv.example.com/rss", Dialect: domain.DialectFeedburner, ErrorCount: 3},
				}, nil
			},
		}
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []domain.Source
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Mint", resp[0].Name)
		assert.True(t, resp[0].Active)
		assert.Equal(t, domain.DialectFeedburner, resp[1].Dialect)
		assert.False(t, resp[1].Active)
		assert.Equal(t, 3, resp[1].ErrorCount)
	})

	t.Run("empty registry", func(t *testing.T) {
		store := &mocks.SourceStoreMock{
			ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) { return nil, nil },
		}
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		store := &mocks.SourceStoreMock{
			ListSourcesFunc: func(ctx context.Context) ([]domain.Source, error) { return nil, errors.New("db down") },
		}
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/feeds", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "db down", decodeError(t, rec))
	})
}

func TestServer_CreateFeed(t *testing.T) {
	newStore := func(err error) *mocks.SourceStoreMock {
		return &mocks.SourceStoreMock{
			CreateSourceFunc: func(ctx context.Context, src *domain.Source) error {
				if err != nil {
					return err
				}
				src.ID = 42
				src.CreatedAt = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
				return nil
			},
		}
	}

	t.Run("defaults", func(t *testing.T) {
		store := newStore(nil)
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds", `{"name":" Mint ","url":" https://mint.example.com/rss "}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp domain.Source
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "Mint", resp.Name)
		assert.Equal(t, "https://mint.example.com/rss", resp.URL)
		assert.Equal(t, domain.DialectStandard, resp.Dialect)
		assert.True(t, resp.Active)

		require.Len(t, store.CreateSourceCalls(), 1)
		assert.Equal(t, "Mint", store.CreateSourceCalls()[0].Src.Name)
	})

	t.Run("explicit dialect and inactive", func(t *testing.T) {
		store := newStore(nil)
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds",
			`{"name":"Indian Express","url":"https://indianexpress.example.com/feed","parser":"wordpress","isActive":false}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		src := store.CreateSourceCalls()[0].Src
		assert.Equal(t, domain.DialectWordpress, src.Dialect)
		assert.False(t, src.Active)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			err  string
		}{
			{name: "bad json", body: `{"name":`, err: "invalid request body"},
			{name: "missing name", body: `{"url":"https://example.com/rss"}`, err: "name and url are required"},
			{name: "blank url", body: `{"name":"x","url":"  "}`, err: "name and url are required"},
			{name: "relative url", body: `{"name":"x","url":"/rss"}`, err: "invalid feed url"},
			{name: "ftp url", body: `{"name":"x","url":"ftp://example.com/rss"}`, err: "invalid feed url"},
			{name: "unknown parser", body: `{"name":"x","url":"https://example.com/rss","parser":"atom"}`, err: "unknown parser"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newStore(nil)
				srv := testServer(t, Params{Sources: store})

				rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds", tt.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, decodeError(t, rec), tt.err)
				assert.Empty(t, store.CreateSourceCalls())
			})
		}
	})

	t.Run("duplicate url", func(t *testing.T) {
		srv := testServer(t, Params{Sources: newStore(fmt.Errorf("create source: %w", repository.ErrDuplicate))})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds", `{"name":"Mint","url":"https://mint.example.com/rss"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		srv := testServer(t, Params{Sources: newStore(errors.New("disk full"))})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds", `{"name":"Mint","url":"https://mint.example.com/rss"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "disk full", decodeError(t, rec))
	})
}

func TestServer_UpdateFeed(t *testing.T) {
	newStore := func() *mocks.SourceStoreMock {
		return &mocks.SourceStoreMock{
			UpdateSourceFunc: func(ctx context.Context, id int64, upd repository.SourceUpdate) (*domain.Source, error) {
				if id != 1 {
					return nil, fmt.Errorf("get source %d: %w", id, repository.ErrNotFound)
				}
				src := &domain.Source{ID: 1, Name: "Mint", URL: "https://mint.example.com/rss", Dialect: domain.DialectStandard, Active: true}
				if upd.Name != nil {
					src.Name = *upd.Name
				}
				if upd.URL != nil {
					src.URL = *upd.URL
				}
				if upd.Dialect != nil {
					src.Dialect = *upd.Dialect
				}
				if upd.Active != nil {
					src.Active = *upd.Active
				}
				return src, nil
			},
		}
	}

	t.Run("partial update", func(t *testing.T) {
		store := newStore()
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodPatch, "/api/v1/feeds/1", `{"isActive":false}`)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, store.UpdateSourceCalls(), 1)
		upd := store.UpdateSourceCalls()[0].Upd
		assert.Nil(t, upd.Name)
		assert.Nil(t, upd.URL)
		assert.Nil(t, upd.Dialect)
		require.NotNil(t, upd.Active)
		assert.False(t, *upd.Active)

		var resp domain.Source
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Mint", resp.Name)
		assert.False(t, resp.Active)
	})

	t.Run("all fields", func(t *testing.T) {
		store := newStore()
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodPatch, "/api/v1/feeds/1",
			`{"name":"Livemint","url":"https://livemint.example.com/rss","parser":"custom","isActive":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp domain.Source
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Livemint", resp.Name)
		assert.Equal(t, "https://livemint.example.com/rss", resp.URL)
		assert.Equal(t, domain.DialectCustom, resp.Dialect)
	})

	t.Run("blank name is ignored", func(t *testing.T) {
		store := newStore()
		srv := testServer(t, Params{Sources: store})

		rec := doRequest(t, srv, http.MethodPatch, "/api/v1/feeds/1", `{"name":"  "}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, store.UpdateSourceCalls()[0].Upd.Name)
	})

	t.Run("not found", func(t *testing.T) {
		srv := testServer(t, Params{Sources: newStore()})

		rec := doRequest(t, srv, http.MethodPatch, "/api/v1/feeds/99", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad requests", func(t *testing.T) {
		tests := []struct {
			name   string
			target string
			body   string
		}{
			{name: "invalid id", target: "/api/v1/feeds/abc", body: `{"name":"x"}`},
			{name: "bad json", target: "/api/v1/feeds/1", body: `{`},
			{name: "invalid url", target: "/api/v1/feeds/1", body: `{"url":"not a url"}`},
			{name: "unknown parser", target: "/api/v1/feeds/1", body: `{"parser":"rdf"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newStore()
				srv := testServer(t, Params{Sources: store})

				rec := doRequest(t, srv, http.MethodPatch, tt.target, tt.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Empty(t, store.UpdateSourceCalls())
			})
		}
	})
}

func TestServer_DeleteFeed(t *testing.T) {
	store := &mocks.SourceStoreMock{
		DeleteSourceFunc: func(ctx context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return fmt.Errorf("delete source %d: %w", id, repository.ErrNotFound)
		},
	}
	srv := testServer(t, Params{Sources: store})

	t.Run("deleted", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodDelete, "/api/v1/feeds/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Feed deleted"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodDelete, "/api/v1/feeds/2", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeError(t, rec), "not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodDelete, "/api/v1/feeds/x", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid feed ID", decodeError(t, rec))
	})

	assert.Len(t, store.DeleteSourceCalls(), 2)
}

func TestServer_TestFeed(t *testing.T) {
	t.Run("raw items", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			TestOneFunc: func(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error) {
				return []feed.RawItem{{Title: "one", Link: "https://example.com/1"}, {Title: "two"}}, nil
			},
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds/test", `{"url":"https://example.com/rss","parser":"feedburner"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Count int            `json:"count"`
			Items []feed.RawItem `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "one", resp.Items[0].Title)

		require.Len(t, agg.TestOneCalls(), 1)
		assert.Equal(t, "https://example.com/rss", agg.TestOneCalls()[0].Url)
		assert.Equal(t, domain.DialectFeedburner, agg.TestOneCalls()[0].Dialect)
	})

	t.Run("default dialect", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			TestOneFunc: func(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error) {
				return nil, nil
			},
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds/test", `{"url":"https://example.com/rss"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.DialectStandard, agg.TestOneCalls()[0].Dialect)
	})

	t.Run("fetch failure", func(t *testing.T) {
		agg := &mocks.AggregatorMock{
			TestOneFunc: func(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error) {
				return nil, errors.New("test feed https://example.com/rss: fetch feed: unexpected status code: 503")
			},
		}
		srv := testServer(t, Params{Aggregator: agg})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds/test", `{"url":"https://example.com/rss"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, decodeError(t, rec), "503")
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, body := range []string{`{`, `{"url":""}`, `{"url":"example.com"}`, `{"url":"https://example.com","parser":"x"}`} {
			agg := &mocks.AggregatorMock{}
			srv := testServer(t, Params{Aggregator: agg})

			rec := doRequest(t, srv, http.MethodPost, "/api/v1/feeds/test", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Empty(t, agg.TestOneCalls())
		}
	})
}

func TestServer_Config(t *testing.T) {
	t.Run("get stored", func(t *testing.T) {
		settings := &mocks.SettingsStoreMock{
			GetDisplaySettingsFunc: func(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
				ds := defaults
				ds.CacheSize = 25
				return ds, nil
			},
		}
		srv := testServer(t, Params{Settings: settings})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/config", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"displayDuration":10000,"cacheSize":25,"screenDimensions":{"width":1920,"height":1080},"fontSize":{"title":48,"content":24}}`,
			rec.Body.String())
		assert.Equal(t, domain.DefaultDisplaySettings(), settings.GetDisplaySettingsCalls()[0].Defaults)
	})

	t.Run("get falls back to defaults", func(t *testing.T) {
		settings := &mocks.SettingsStoreMock{
			GetDisplaySettingsFunc: func(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
				return domain.DisplaySettings{}, errors.New("corrupt")
			},
		}
		srv := testServer(t, Params{Settings: settings})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/config", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var ds domain.DisplaySettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))
		assert.Equal(t, domain.DefaultDisplaySettings(), ds)
	})

	t.Run("put merges with current", func(t *testing.T) {
		current := domain.DefaultDisplaySettings()
		current.DisplayDuration = 5000
		settings := &mocks.SettingsStoreMock{
			GetDisplaySettingsFunc: func(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
				return current, nil
			},
			SaveDisplaySettingsFunc: func(ctx context.Context, ds domain.DisplaySettings) error { return nil },
		}
		srv := testServer(t, Params{Settings: settings})

		rec := doRequest(t, srv, http.MethodPut, "/api/v1/config", `{"cacheSize":20,"screenDimensions":{"width":1280}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, settings.SaveDisplaySettingsCalls(), 1)
		saved := settings.SaveDisplaySettingsCalls()[0].Ds
		assert.Equal(t, 20, saved.CacheSize)
		assert.Equal(t, 1280, saved.Screen.Width)
		assert.Equal(t, 1080, saved.Screen.Height)
		assert.Equal(t, 5000, saved.DisplayDuration)

		var resp domain.DisplaySettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, saved, resp)
	})

	t.Run("put bad json", func(t *testing.T) {
		settings := &mocks.SettingsStoreMock{
			GetDisplaySettingsFunc: func(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
				return defaults, nil
			},
		}
		srv := testServer(t, Params{Settings: settings})

		rec := doRequest(t, srv, http.MethodPut, "/api/v1/config", `{"cacheSize":"many"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, settings.SaveDisplaySettingsCalls())
	})

	t.Run("put save error", func(t *testing.T) {
		settings := &mocks.SettingsStoreMock{
			GetDisplaySettingsFunc: func(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
				return defaults, nil
			},
			SaveDisplaySettingsFunc: func(ctx context.Context, ds domain.DisplaySettings) error { return errors.New("locked") },
		}
		srv := testServer(t, Params{Settings: settings})

		rec := doRequest(t, srv, http.MethodPut, "/api/v1/config", `{"cacheSize":5}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "locked", decodeError(t, rec))
	})
}
