package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsreel/pkg/domain"
)

// maxEpochSeconds is the largest magnitude accepted for unix timestamps (±100M days)
const maxEpochSeconds = 8.64e12

var calendarLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339Nano,
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
}

var dayFirstRe = regexp.MustCompile(`^(\d{1,2})[/ -](\d{1,2})[/ -](\d{4})$`)

// DateParser resolves publication dates of any shape to a timestamp.
// Unparseable or empty input resolves to Now, so callers can't tell "now" from "unknown".
type DateParser struct {
	Now func() time.Time
}

// NewDateParser makes a parser using wall clock for the fallback
func NewDateParser() *DateParser {
	return &DateParser{Now: time.Now}
}

// NormalizeDate formats raw date as ISO-8601 using wall clock fallback
func NormalizeDate(raw string) string {
	return NewDateParser().Normalize(raw)
}

// Normalize returns raw date formatted as ISO-8601 in UTC with milliseconds
func (p *DateParser) Normalize(raw string) string {
	return p.Parse(raw).Format(domain.ISOLayout)
}

// Parse tries calendar formats, then a day/month/year literal, then month/day/year, then unix seconds.
// The first candidate producing a valid date wins.
func (p *DateParser) Parse(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p.now()
	}

	for _, parse := range []func(string) (time.Time, bool){parseCalendar, parseDayFirst, parseMonthFirst, parseEpoch} {
		if ts, ok := parse(raw); ok && ts.UTC().Year() >= 0 && ts.UTC().Year() <= 9999 {
			return ts.UTC().Truncate(time.Millisecond)
		}
	}

	lgr.Printf("[WARN] can't parse date %q, using current time", raw)
	return p.now()
}

func (p *DateParser) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC().Truncate(time.Millisecond)
	}
	return p.Now().UTC().Truncate(time.Millisecond)
}

// parseCalendar handles RFC-2822, ISO-8601 and other common layouts.
// Numeric d/m/y literals are left to parseDayFirst, dateparse would read them month first.
// dateparse may panic on odd input, recover keeps the chain total
func parseCalendar(raw string) (ts time.Time, ok bool) {
	if dayFirstRe.MatchString(raw) {
		return time.Time{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[DEBUG] date parser panic on %q: %v", raw, r)
			ts, ok = time.Time{}, false
		}
	}()

	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDayFirst reads "15/03/2024", "15-03-2024" or "15 03 2024" as 2024-03-15 UTC midnight
func parseDayFirst(raw string) (time.Time, bool) {
	return parseNumericDate(raw, 1, 2)
}

// parseMonthFirst reads the same literals as month/day/year, "03/15/2024" gives 2024-03-15.
// It runs only after parseDayFirst failed, so an ambiguous "03/04/2024" is April 3 here, not March 4.
func parseMonthFirst(raw string) (time.Time, bool) {
	return parseNumericDate(raw, 2, 1)
}

// parseNumericDate matches dayFirstRe and takes day and month from the given submatch positions
func parseNumericDate(raw string, dayPos, monthPos int) (time.Time, bool) {
	m := dayFirstRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[dayPos])
	month, _ := strconv.Atoi(m[monthPos])
	year, _ := strconv.Atoi(m[3])

	t, err := time.Parse("2006-01-02", fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	if err != nil {
		return time.Time{}, false // month or day out of range
	}
	return t, true
}

// parseEpoch reads a whole-string integer as unix seconds
func parseEpoch(raw string) (time.Time, bool) {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs > maxEpochSeconds || secs < -maxEpochSeconds {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
