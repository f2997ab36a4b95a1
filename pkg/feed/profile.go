package feed

import (
	"slices"

	"github.com/umputun/newsreel/pkg/domain"
)

// field keys produced by custom field mappings
const (
	FieldMediaContent   = "mediaContent"
	FieldContentEncoded = "contentEncoded"
	FieldDescription    = "description"
	FieldOriginalLink   = "originalLink"
	FieldCreator        = "creator"
	FieldFeaturedMedia  = "featuredMedia"
	FieldBSImage        = "bsImage"
)

// content sources used in Profile.ContentFields, other names refer to RawItem.Fields keys
const (
	ContentGeneric = "@content"
	ContentDesc    = "@description"
	ContentRawKey  = "@content:encoded"
	ContentSummary = "@summary"
)

// ImageKind selects the dialect specific image strategy
type ImageKind int

// image strategies, the generic fallback chain runs after any of them
const (
	ImageNone         ImageKind = iota // no dialect specific step
	ImageField                         // value of a custom field
	ImageLargestMedia                  // widest media:content candidate
)

// ImageStrategy is the first step of image resolution for a dialect
type ImageStrategy struct {
	Kind  ImageKind
	Field string // used by ImageField
}

// FieldMapping maps a raw document element (e.g. "feedburner:origLink") to a RawItem.Fields key
type FieldMapping struct {
	Source string
	Key    string
}

// Profile is an immutable set of extraction rules for one dialect
type Profile struct {
	Dialect       domain.Dialect
	CustomFields  []FieldMapping
	ContentFields []string
	Image         ImageStrategy
	LinkField     string // preferred over the canonical link if set and present
}

var standardFields = []FieldMapping{
	{Source: "media:content", Key: FieldMediaContent},
	{Source: "content:encoded", Key: FieldContentEncoded},
	{Source: "description", Key: FieldDescription},
}

var contentOrder = []string{FieldContentEncoded, ContentGeneric, ContentDesc, ContentRawKey, ContentSummary}

var profiles = map[domain.Dialect]Profile{
	domain.DialectStandard: {
		Dialect:       domain.DialectStandard,
		CustomFields:  standardFields,
		ContentFields: contentOrder,
	},
	domain.DialectFeedburner: {
		Dialect:       domain.DialectFeedburner,
		CustomFields:  append(append([]FieldMapping{}, standardFields...), FieldMapping{Source: "feedburner:origLink", Key: FieldOriginalLink}),
		ContentFields: contentOrder,
		Image:         ImageStrategy{Kind: ImageLargestMedia},
		LinkField:     FieldOriginalLink,
	},
	domain.DialectWordpress: {
		Dialect: domain.DialectWordpress,
		CustomFields: []FieldMapping{
			{Source: "content:encoded", Key: FieldContentEncoded},
			{Source: "dc:creator", Key: FieldCreator},
			{Source: "wp:featuredmedia", Key: FieldFeaturedMedia},
		},
		ContentFields: contentOrder,
		Image:         ImageStrategy{Kind: ImageField, Field: FieldFeaturedMedia},
	},
	domain.DialectCustom: {
		Dialect:       domain.DialectCustom,
		CustomFields:  append(append([]FieldMapping{}, standardFields...), FieldMapping{Source: "bs:image", Key: FieldBSImage}),
		ContentFields: contentOrder,
		Image:         ImageStrategy{Kind: ImageField, Field: FieldBSImage},
	},
}

// ProfileFor returns the profile for dialect, standard for anything unknown.
// Slices are cloned so callers can't alter the catalog.
func ProfileFor(dialect domain.Dialect) Profile {
	p, ok := profiles[dialect]
	if !ok {
		p = profiles[domain.DialectStandard]
	}
	p.CustomFields = slices.Clone(p.CustomFields)
	p.ContentFields = slices.Clone(p.ContentFields)
	return p
}
