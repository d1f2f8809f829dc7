// Package reviews implements the resilient extraction and
// crawl-control engine for third-party product review sites.
//
// the markup on these sites is unstable, inconsistent between pages
// and actively defended against automation. the engine deals with that
// by never trusting any single locator: every field is resolved
// through a priority-ordered cascade of candidates, and the crawl loop
// is bounded on every axis (target count, page ceiling, stagnation).
package reviews

import "fmt"

// Source identifies the review platform a crawl runs against.
type Source string

const (
	SourceG2          Source = "g2"
	SourceCapterra    Source = "capterra"
	SourceTrustRadius Source = "trustradius"
)

// Sources lists every supported platform.
func Sources() []Source {
	return []Source{SourceG2, SourceCapterra, SourceTrustRadius}
}

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceG2, SourceCapterra, SourceTrustRadius:
		return Source(s), nil
	}
	return "", fmt.Errorf("unsupported source %q, must be one of: g2, capterra, trustradius", s)
}

// Display is the platform's branding, used in output metadata.
func (s Source) Display() string {
	switch s {
	case SourceG2:
		return "G2"
	case SourceCapterra:
		return "Capterra"
	case SourceTrustRadius:
		return "TrustRadius"
	}
	return string(s)
}

// placeholder values substituted for genuinely absent data, so
// downstream consumers never see empty fields where the site simply
// didn't render one
const (
	SentinelAnonymous   = "anonymous"
	SentinelUnspecified = "unspecified"
	SentinelUnknownDate = "unknown"

	fallbackTitle = "Review"
	fallbackBody  = "No description available"
)

// ReviewRecord is one extracted review. Records are terminal: the
// engine hands them to the caller and never mutates them again.
type ReviewRecord struct {
	Title string `json:"title"`
	Body  string `json:"description"`
	// Date is an ISO-8601 date when the site's date string could be
	// normalized, otherwise the raw string, otherwise "unknown".
	Date   string   `json:"date"`
	Rating *float64 `json:"rating"`
	// ReviewerName is "anonymous" when the site omits it.
	ReviewerName string `json:"reviewer_name"`
	// ReviewerContext is the reviewer's company/role blurb,
	// "unspecified" when absent.
	ReviewerContext string `json:"reviewer_info"`
	Pros            string `json:"pros,omitempty"`
	Cons            string `json:"cons,omitempty"`
	Source          Source `json:"source"`
}
