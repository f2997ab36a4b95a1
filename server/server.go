// Package server exposes the aggregated news list, the source registry and display settings over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsreel/pkg/domain"
	"github.com/umputun/newsreel/pkg/feed"
	"github.com/umputun/newsreel/pkg/repository"
)

//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	Params
	generator *feed.Generator

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params defines server dependencies and settings
type Params struct {
	Sources    SourceStore
	Settings   SettingsStore
	Aggregator Aggregator
	Scheduler  Scheduler

	Listen          string
	Timeout         time.Duration
	BaseURL         string
	DisplayDefaults domain.DisplaySettings
	Version         string
	Debug           bool
}

// SourceStore is the feed registry used by admin endpoints
type SourceStore interface {
	ListSources(ctx context.Context) ([]domain.Source, error)
	CreateSource(ctx context.Context, src *domain.Source) error
	UpdateSource(ctx context.Context, id int64, upd repository.SourceUpdate) (*domain.Source, error)
	DeleteSource(ctx context.Context, id int64) error
}

// SettingsStore keeps display settings
type SettingsStore interface {
	GetDisplaySettings(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error)
	SaveDisplaySettings(ctx context.Context, ds domain.DisplaySettings) error
}

// Aggregator produces the ranked news list on demand
type Aggregator interface {
	Aggregate(ctx context.Context) ([]domain.NewsItem, error)
	TestOne(ctx context.Context, url string, dialect domain.Dialect) ([]feed.RawItem, error)
}

// Scheduler holds the periodically refreshed snapshot
type Scheduler interface {
	Latest() ([]domain.NewsItem, time.Time)
	RefreshNow(ctx context.Context) ([]domain.NewsItem, error)
}

// New initializes a new server instance
func New(params Params) *Server {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	s := &Server{
		Params:    params,
		generator: feed.NewGenerator(params.BaseURL),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.Timeout,
		ReadTimeout:       s.Timeout,
		WriteTimeout:      s.Timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsreel", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("GET /news/latest", s.latestNewsHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.createFeedHandler)
		r.HandleFunc("POST /feeds/test", s.testFeedHandler)
		r.HandleFunc("PATCH /feeds/{id}", s.updateFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)

		r.HandleFunc("GET /config", s.getConfigHandler)
		r.HandleFunc("PUT /config", s.updateConfigHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
	}
	if s.Scheduler != nil {
		items, updated := s.Scheduler.Latest()
		status["items"] = len(items)
		if !updated.IsZero() {
			status["updated"] = updated
		}
	}
	renderJSON(w, r, http.StatusOK, status)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
