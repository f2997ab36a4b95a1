// Package content normalizes text and dates extracted from syndication documents.
// All functions here are total: they never fail and always return a usable value.
package content

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// entities is the fixed set of named entities decoded from feed text.
// strings.Replacer makes a single pass, so "&amp;lt;" decodes to "&lt;" and not to "<"
var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// Normalize converts feed markup to plain text. Tags are replaced by a space, entities decoded
// and whitespace collapsed. Decoded entities may produce new markup (e.g. "&lt;b&gt;"), so the
// cleanup repeats until the text is stable, which makes Normalize idempotent.
func Normalize(raw string) string {
	res := clean(raw)
	for {
		next := clean(res)
		if next == res {
			return res
		}
		res = next // every change shrinks the text, so this terminates
	}
}

func clean(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllString(s, " ")
	s = entities.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
