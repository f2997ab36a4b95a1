package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/umputun/newsreel/pkg/domain"
)

// rssHandler serves the aggregated list as RSS.
// The scheduled snapshot is used if there is one, otherwise aggregation runs on demand.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	if s.Scheduler != nil {
		if items, updated := s.Scheduler.Latest(); !updated.IsZero() {
			s.writeRSS(w, items, r.URL.Query().Get("title"))
			return
		}
	}

	items, err := s.Aggregator.Aggregate(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get items for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	s.writeRSS(w, items, r.URL.Query().Get("title"))
}

// opmlHandler exports active sources as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.Sources.ListSources(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to list sources for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	doc, err := s.generator.GenerateOPML(sources)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="newsreel.opml"`)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

func (s *Server) writeRSS(w http.ResponseWriter, items []domain.NewsItem, title string) {
	rss, err := s.generator.GenerateRSS(items, strings.TrimSpace(title))
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
