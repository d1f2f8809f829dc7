package reviews

import (
	"strings"
	"time"
)

// dateFormats lists the layouts review sites have been observed using,
// tried in order.
var dateFormats = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2006-01-02",
	"02/01/2006",
	"January 2006",
	"Jan 2006",
}

// ParseReviewDate normalizes a scraped date string to ISO 8601. Input
// that matches none of the known layouts is returned trimmed, so a
// site changing its date format degrades rather than drops data.
func ParseReviewDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	// datetime attributes often carry a full timestamp.
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t.Format("2006-01-02")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return trimmed
}

// FilterByDateRange keeps records dated within [start, end] inclusive.
// Records whose dates cannot be parsed are retained.
func FilterByDateRange(records []ReviewRecord, start, end time.Time) []ReviewRecord {
	filtered := make([]ReviewRecord, 0, len(records))
	for _, record := range records {
		t, err := time.Parse("2006-01-02", record.Date)
		if err != nil {
			filtered = append(filtered, record)
			continue
		}
		if t.Before(start) || t.After(end) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}
