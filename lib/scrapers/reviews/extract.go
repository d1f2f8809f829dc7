package reviews

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"reviewharvest/lib/pageview"
	"reviewharvest/lib/textutil"
)

// ExtractField resolves a field inside container by trying each
// locator in priority order and returning the first non-empty visible
// text. A locator that fails to resolve is a miss, never an error:
// this short-circuiting cascade is what keeps extraction working when
// arbitrary subsets of a page's markup change.
func ExtractField(ctx context.Context, view pageview.View, container pageview.Element, locators []string) string {
	for _, locator := range locators {
		el, err := view.FindOne(ctx, container, locator)
		if err != nil {
			continue
		}
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		text = textutil.CleanReviewText(text)
		if text != "" {
			return text
		}
	}
	return ""
}

// extractDate is the field cascade with the machine-readable datetime
// attribute preferred over visible text.
func extractDate(ctx context.Context, view pageview.View, container pageview.Element, locators []string) string {
	for _, locator := range locators {
		el, err := view.FindOne(ctx, container, locator)
		if err != nil {
			continue
		}
		if v, ok, err := el.Attribute(ctx, "datetime"); err == nil && ok && strings.TrimSpace(v) != "" {
			return ParseReviewDate(v)
		}
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		text = textutil.CleanReviewText(text)
		if text != "" {
			return ParseReviewDate(text)
		}
	}
	return ""
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// attributes sites stash numeric ratings in when the visible rating is
// a row of star icons
var ratingAttrs = []string{"data-rating", "data-score", "title"}

// ExtractRating resolves a numeric rating inside container. For each
// candidate locator it tries, in order: an accessible label mentioning
// stars, the element's visible text, then the known data attributes.
// The first parseable number anywhere in the cascade wins; malformed
// numeric text is a miss, not an error.
func ExtractRating(ctx context.Context, view pageview.View, container pageview.Element, locators []string) (float64, bool) {
	for _, locator := range locators {
		el, err := view.FindOne(ctx, container, locator)
		if err != nil {
			continue
		}

		if label, ok, err := el.Attribute(ctx, "aria-label"); err == nil && ok {
			if strings.Contains(strings.ToLower(label), "star") {
				if v, ok := parseLeadingNumber(label); ok {
					return v, true
				}
			}
		}

		if text, err := el.Text(ctx); err == nil {
			if v, ok := parseLeadingNumber(text); ok {
				return v, true
			}
		}

		for _, attr := range ratingAttrs {
			if raw, ok, err := el.Attribute(ctx, attr); err == nil && ok {
				if v, ok := parseLeadingNumber(raw); ok {
					return v, true
				}
			}
		}
	}
	return 0, false
}

// parseLeadingNumber pulls the first digit sequence (with optional
// decimal part) out of text, e.g. "Rated 4.5 out of 5 stars" -> 4.5.
func parseLeadingNumber(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
