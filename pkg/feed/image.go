package feed

import (
	"regexp"

	"github.com/umputun/newsreel/pkg/domain"
)

var imgSrcRe = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// imageStrategies dispatches dialect specific image lookup by strategy kind
var imageStrategies = map[ImageKind]func(RawItem, ImageStrategy) string{
	ImageNone:         func(RawItem, ImageStrategy) string { return "" },
	ImageField:        func(r RawItem, s ImageStrategy) string { return r.Field(s.Field) },
	ImageLargestMedia: func(r RawItem, _ ImageStrategy) string { return largestMedia(r.Media) },
}

// ResolveImage finds a representative image url for the item, empty if none.
// The dialect step runs first, then media:content, media:thumbnail, enclosure and the first <img> in the body.
func ResolveImage(r RawItem, dialect domain.Dialect) string {
	strategy := ProfileFor(dialect).Image
	if fn, ok := imageStrategies[strategy.Kind]; ok {
		if u := fn(r, strategy); u != "" {
			return u
		}
	}

	if len(r.Media) > 0 {
		return r.Media[0].URL
	}
	if r.Thumbnail != "" {
		return r.Thumbnail
	}
	if r.Enclosure != "" {
		return r.Enclosure
	}

	html := r.Content
	if html == "" {
		html = r.Description
	}
	return imageFromHTML(html)
}

// largestMedia picks the widest candidate, the first one wins on equal width
func largestMedia(media []MediaContent) string {
	best := -1
	for i, m := range media {
		if best < 0 || m.Width > media[best].Width {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return media[best].URL
}

func imageFromHTML(html string) string {
	if m := imgSrcRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}
