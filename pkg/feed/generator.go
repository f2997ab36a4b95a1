package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/newsreel/pkg/domain"
)

// Generator renders the aggregated list and the source registry as syndication documents
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from aggregated news items, in the given order
func (g *Generator) GenerateRSS(items []domain.NewsItem, title string) (string, error) {
	if title == "" {
		title = "Newsreel"
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Latest %d news items from active sources", len(items)),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(item domain.NewsItem) *RSSItem {
	res := &RSSItem{
		Title:       item.Title,
		Link:        item.Link,
		GUID:        &RSSGUID{Value: item.Link, IsPermaLink: true},
		Description: item.Content,
		Author:      item.Author,
		Source:      item.Source,
		PubDate:     item.PubDate.Format(time.RFC1123Z),
	}
	if item.ImageURL != "" {
		res.Enclosure = &RSSEnclosure{URL: item.ImageURL, Type: imageType(item.ImageURL)}
	}
	return res
}

// imageType guesses enclosure mime type from the url extension, image/jpeg if unknown
func imageType(link string) string {
	p := link
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(p))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}

// GenerateOPML creates an OPML file with active source subscriptions
func (g *Generator) GenerateOPML(sources []domain.Source) (string, error) {
	outlines := make([]opmlOutline, 0, len(sources))
	for _, src := range sources {
		if !src.Active {
			continue
		}
		outlines = append(outlines, opmlOutline{
			Text:   src.Name,
			Title:  src.Name,
			Type:   "rss",
			XMLURL: src.URL,
			Parser: string(src.Dialect),
		})
	}

	doc := opml{
		Version: "2.0",
		Head:    opmlHead{Title: "Newsreel Sources", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    opmlBody{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
