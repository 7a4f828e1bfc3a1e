package htmlparser

import (
	"strings"
	"time"
)

// fallbackLayouts are tried, as UTC, after RFC 3339.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses s as RFC 3339 or one of fallbackLayouts. The result is
// always UTC.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(s string) *time.Time {
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	return &t
}

// extractTimes returns the published and updated times. Meta tags win over
// JSON-LD; JSON-LD objects are scanned until both are found.
func extractTimes(d *document) (published, updated *time.Time) {
	published = parseTimePtr(d.meta["article:published_time"])
	updated = parseTimePtr(d.meta["article:modified_time"])
	if updated == nil {
		updated = parseTimePtr(d.meta["og:updated_time"])
	}

	for _, obj := range d.schema {
		if published != nil && updated != nil {
			break
		}
		if published == nil {
			if s, ok := obj["datePublished"].(string); ok {
				published = parseTimePtr(s)
			}
		}
		if updated == nil {
			if s, ok := obj["dateModified"].(string); ok {
				updated = parseTimePtr(s)
			}
		}
	}
	return published, updated
}
