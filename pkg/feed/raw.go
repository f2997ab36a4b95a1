package feed

import (
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// RawItem is a flattened entry of a fetched document, before normalization
type RawItem struct {
	Title       string            `json:"title"`
	Link        string            `json:"link"`
	Description string            `json:"description,omitempty"`
	Content     string            `json:"content,omitempty"`
	Encoded     string            `json:"content:encoded,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Author      string            `json:"author,omitempty"`
	Creator     string            `json:"creator,omitempty"`
	Published   string            `json:"pubDate,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Media       []MediaContent    `json:"mediaContent,omitempty"`
	Thumbnail   string            `json:"mediaThumbnail,omitempty"`
	Enclosure   string            `json:"enclosure,omitempty"`
}

// MediaContent is a media:content candidate, Width is 0 if not declared
type MediaContent struct {
	URL   string `json:"url"`
	Width int    `json:"width,omitempty"`
}

// Field returns custom field value by key
func (r RawItem) Field(key string) string {
	return r.Fields[key]
}

// toRawItem flattens gofeed item using profile custom field mappings
func toRawItem(item *gofeed.Item, profile Profile) RawItem {
	res := RawItem{
		Title:       item.Title,
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Content:     item.Content,
		Encoded:     extValue(item.Extensions, "content", "encoded"),
		Summary:     item.Custom["summary"],
		Published:   item.Published,
		Fields:      make(map[string]string, len(profile.CustomFields)),
	}

	if res.Content == "" {
		res.Content = res.Encoded
	}

	if item.Author != nil {
		res.Author = item.Author.Name
		if res.Author == "" {
			res.Author = item.Author.Email
		}
	}

	if item.DublinCoreExt != nil {
		if len(item.DublinCoreExt.Creator) > 0 {
			res.Creator = item.DublinCoreExt.Creator[0]
		}
		if res.Published == "" && len(item.DublinCoreExt.Date) > 0 {
			res.Published = item.DublinCoreExt.Date[0]
		}
	}
	if res.Creator == "" {
		res.Creator = extValue(item.Extensions, "dc", "creator")
	}
	if res.Published == "" {
		res.Published = item.Updated
	}

	for _, fm := range profile.CustomFields {
		if v := lookupField(item, fm.Source); v != "" {
			res.Fields[fm.Key] = v
		}
	}

	res.Media = mediaCandidates(item.Extensions)
	if th, ok := firstExt(item.Extensions, "media", "thumbnail"); ok {
		res.Thumbnail = strings.TrimSpace(th.Attrs["url"])
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			res.Enclosure = strings.TrimSpace(enc.URL)
			break
		}
	}

	return res
}

// lookupField resolves a raw element name like "description" or "feedburner:origLink".
// Namespaced elements come from extensions, plain ones from parsed fields or unknown elements.
func lookupField(item *gofeed.Item, source string) string {
	switch source {
	case "description":
		return item.Description
	case "content:encoded":
		if item.Content != "" {
			return item.Content
		}
	case "dc:creator":
		if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
			return item.DublinCoreExt.Creator[0]
		}
	}

	prefix, name, namespaced := strings.Cut(source, ":")
	if !namespaced {
		return strings.TrimSpace(item.Custom[source])
	}
	return extValue(item.Extensions, prefix, name)
}

// extValue returns element text, or its url/href attribute for empty elements
func extValue(exts ext.Extensions, prefix, name string) string {
	e, ok := firstExt(exts, prefix, name)
	if !ok {
		return ""
	}
	if v := strings.TrimSpace(e.Value); v != "" {
		return v
	}
	if v := strings.TrimSpace(e.Attrs["url"]); v != "" {
		return v
	}
	return strings.TrimSpace(e.Attrs["href"])
}

func firstExt(exts ext.Extensions, prefix, name string) (ext.Extension, bool) {
	if exts == nil {
		return ext.Extension{}, false
	}
	list := exts[prefix][name]
	if len(list) == 0 {
		// element names are case sensitive in xml but feeds aren't consistent, e.g. origLink vs origlink
		for n, l := range exts[prefix] {
			if strings.EqualFold(n, name) && len(l) > 0 {
				list = l
				break
			}
		}
	}
	if len(list) == 0 {
		return ext.Extension{}, false
	}
	return list[0], true
}

// mediaCandidates collects media:content entries in document order, including those in media:group
func mediaCandidates(exts ext.Extensions) []MediaContent {
	if exts == nil {
		return nil
	}
	var res []MediaContent
	add := func(list []ext.Extension) {
		for _, e := range list {
			u := strings.TrimSpace(e.Attrs["url"])
			if u == "" {
				continue
			}
			w, _ := strconv.Atoi(strings.TrimSpace(e.Attrs["width"]))
			res = append(res, MediaContent{URL: u, Width: w})
		}
	}
	add(exts["media"]["content"])
	for _, g := range exts["media"]["group"] {
		add(g.Children["content"])
	}
	return res
}
