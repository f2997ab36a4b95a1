package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/newsreel/pkg/domain"
	"github.com/umputun/newsreel/pkg/repository"
)

// feedRequest is the body of create and update feed requests, nil fields are not set by the client
type feedRequest struct {
	Name     *string         `json:"name"`
	URL      *string         `json:"url"`
	Dialect  *domain.Dialect `json:"parser"`
	IsActive *bool           `json:"isActive"`
}

// testFeedRequest is the body of the feed test request
type testFeedRequest struct {
	URL     string         `json:"url"`
	Dialect domain.Dialect `json:"parser"`
}

// newsHandler runs aggregation on demand
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.Aggregator.Aggregate(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to aggregate news: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, nonNil(items))
}

// latestNewsHandler returns the last scheduled snapshot, refresh=true forces a new run
func (s *Server) latestNewsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if _, err := s.Scheduler.RefreshNow(r.Context()); err != nil {
			log.Printf("[ERROR] failed to refresh news: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
	}

	items, updated := s.Scheduler.Latest()
	if updated.IsZero() {
		renderJSON(w, r, http.StatusOK, map[string]any{"items": nonNil(items)})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"items": nonNil(items), "updated": updated})
}

// listFeedsHandler returns all registered sources, active or not
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.Sources.ListSources(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to list feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if sources == nil {
		sources = []domain.Source{}
	}
	renderJSON(w, r, http.StatusOK, sources)
}

// createFeedHandler registers a new source
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	src := domain.Source{Dialect: domain.DialectStandard, Active: true}
	if req.Name != nil {
		src.Name = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		src.URL = strings.TrimSpace(*req.URL)
	}
	if req.Dialect != nil && *req.Dialect != "" {
		src.Dialect = *req.Dialect
	}
	if req.IsActive != nil {
		src.Active = *req.IsActive
	}

	if src.Name == "" || src.URL == "" {
		renderError(w, r, errors.New("name and url are required"), http.StatusBadRequest)
		return
	}
	if err := validateSource(src.URL, src.Dialect); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.Sources.CreateSource(r.Context(), &src); err != nil {
		log.Printf("[WARN] failed to create feed %s: %v", src.URL, err)
		renderError(w, r, err, storeErrorCode(err))
		return
	}

	log.Printf("[INFO] feed %q added, %s", src.Name, src.URL)
	renderJSON(w, r, http.StatusCreated, src)
}

// updateFeedHandler applies a partial update, only fields present in the body change
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid feed ID"), http.StatusBadRequest)
		return
	}

	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	upd := repository.SourceUpdate{Active: req.IsActive, Dialect: req.Dialect}
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			upd.Name = &name
		}
	}
	if req.URL != nil {
		if u := strings.TrimSpace(*req.URL); u != "" {
			upd.URL = &u
		}
	}
	if upd.URL != nil {
		if err := validateURL(*upd.URL); err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
	}
	if upd.Dialect != nil && !upd.Dialect.Valid() {
		renderError(w, r, fmt.Errorf("unknown parser %q", *upd.Dialect), http.StatusBadRequest)
		return
	}

	src, err := s.Sources.UpdateSource(r.Context(), id, upd)
	if err != nil {
		log.Printf("[WARN] failed to update feed %d: %v", id, err)
		renderError(w, r, err, storeErrorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, src)
}

// deleteFeedHandler removes a source from the registry
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid feed ID"), http.StatusBadRequest)
		return
	}

	if err := s.Sources.DeleteSource(r.Context(), id); err != nil {
		log.Printf("[WARN] failed to delete feed %d: %v", id, err)
		renderError(w, r, err, storeErrorCode(err))
		return
	}

	log.Printf("[INFO] feed %d deleted", id)
	renderJSON(w, r, http.StatusOK, map[string]string{"message": "Feed deleted"})
}

// testFeedHandler fetches a feed without registering it and returns its raw entries
func (s *Server) testFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req testFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.Dialect == "" {
		req.Dialect = domain.DialectStandard
	}
	if req.URL == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}
	if err := validateSource(req.URL, req.Dialect); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	items, err := s.Aggregator.TestOne(r.Context(), req.URL, req.Dialect)
	if err != nil {
		log.Printf("[WARN] feed test failed for %s: %v", req.URL, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"count": len(items), "items": items})
}

// getConfigHandler returns display settings, defaults if nothing stored or the store fails
func (s *Server) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.Settings.GetDisplaySettings(r.Context(), s.DisplayDefaults)
	if err != nil {
		log.Printf("[WARN] failed to load display settings, using defaults: %v", err)
		ds = s.DisplayDefaults
	}
	renderJSON(w, r, http.StatusOK, ds)
}

// updateConfigHandler replaces display settings, fields missing in the body keep their current values
func (s *Server) updateConfigHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current, err := s.Settings.GetDisplaySettings(ctx, s.DisplayDefaults)
	if err != nil {
		log.Printf("[WARN] failed to load display settings, using defaults: %v", err)
		current = s.DisplayDefaults
	}

	var ds domain.DisplaySettings
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	ds = ds.WithDefaults(current)

	if err := s.Settings.SaveDisplaySettings(ctx, ds); err != nil {
		log.Printf("[ERROR] failed to save display settings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, ds)
}

// validateSource checks url and dialect tag of a source
func validateSource(rawURL string, dialect domain.Dialect) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	if !dialect.Valid() {
		return fmt.Errorf("unknown parser %q", dialect)
	}
	return nil
}

// validateURL accepts absolute http(s) urls only
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid feed url %q", rawURL)
	}
	return nil
}

// storeErrorCode maps registry errors to http status
func storeErrorCode(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func nonNil(items []domain.NewsItem) []domain.NewsItem {
	if items == nil {
		return []domain.NewsItem{}
	}
	return items
}
