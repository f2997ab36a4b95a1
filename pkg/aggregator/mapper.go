package aggregator

import (
	"strings"

	"github.com/umputun/newsreel/pkg/content"
	"github.com/umputun/newsreel/pkg/domain"
	"github.com/umputun/newsreel/pkg/feed"
)

// mapItem converts a raw entry into a news item using the source profile
func (a *Aggregator) mapItem(src domain.Source, profile feed.Profile, raw feed.RawItem) domain.NewsItem {
	return domain.NewsItem{
		Title:    content.Normalize(raw.Title),
		Content:  content.Normalize(rawContent(raw, profile.ContentFields)),
		ImageURL: feed.ResolveImage(raw, profile.Dialect),
		PubDate:  a.dates.Parse(raw.Published),
		Source:   src.Name,
		Link:     resolveLink(raw, profile.LinkField),
		Author:   firstNonEmpty(raw.Author, raw.Creator, src.Name),
	}
}

// rawContent returns the first non-empty body candidate in profile order, before normalization
func rawContent(raw feed.RawItem, order []string) string {
	for _, name := range order {
		var v string
		switch name {
		case feed.ContentGeneric:
			v = raw.Content
		case feed.ContentDesc:
			v = raw.Description
		case feed.ContentRawKey:
			v = raw.Encoded
		case feed.ContentSummary:
			v = raw.Summary
		default:
			v = raw.Field(name)
		}
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// resolveLink prefers the profile link field, e.g. feedburner original link, over the canonical link
func resolveLink(raw feed.RawItem, field string) string {
	if field != "" {
		if v := strings.TrimSpace(raw.Field(field)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(raw.Link)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
