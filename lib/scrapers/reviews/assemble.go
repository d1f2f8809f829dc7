package reviews

import (
	"context"
	"log/slog"
	"strings"

	"reviewharvest/lib/pageview"
	"reviewharvest/lib/textutil"
)

const (
	// a reviewer name this short can't stand in for actual content
	minReviewerNameLen = 2
	// containers with less raw text than this aren't worth the
	// whole-text fallback
	rawTextFallbackMin = 20
	// fallback titles longer than this get truncated with an ellipsis
	titleLengthCap = 100
)

// Assembler combines per-field extraction results for one source into
// ReviewRecords.
type Assembler struct {
	View   pageview.View
	Spec   LocatorSpec
	Source Source
}

// Assemble extracts one review out of container. The second return is
// false when the container fails the minimum-content rule, which is a
// silent drop rather than an error: plenty of elements matched by the
// broad container locators are not reviews at all.
func (a Assembler) Assemble(ctx context.Context, container pageview.Element) (ReviewRecord, bool) {
	title := ExtractField(ctx, a.View, container, a.Spec.Locators(RoleTitle))
	body := ExtractField(ctx, a.View, container, a.Spec.Locators(RoleBody))

	// last-resort degradation: no structured locator matched, but the
	// container itself carries substantial text. split it on line
	// breaks and guess.
	if title == "" && body == "" {
		title, body = rawTextFallback(ctx, container)
	}

	reviewer := ExtractField(ctx, a.View, container, a.Spec.Locators(RoleReviewerName))

	if title == "" && body == "" && len([]rune(reviewer)) <= minReviewerNameLen {
		slog.DebugContext(ctx, "skipping container with insufficient content", "source", a.Source)
		return ReviewRecord{}, false
	}

	record := ReviewRecord{
		Title:           title,
		Body:            body,
		Date:            extractDate(ctx, a.View, container, a.Spec.Locators(RoleDate)),
		ReviewerName:    reviewer,
		ReviewerContext: ExtractField(ctx, a.View, container, a.Spec.Locators(RoleReviewerContext)),
		Pros:            ExtractField(ctx, a.View, container, a.Spec.Locators(RolePros)),
		Cons:            ExtractField(ctx, a.View, container, a.Spec.Locators(RoleCons)),
		Source:          a.Source,
	}
	if rating, ok := ExtractRating(ctx, a.View, container, a.Spec.Locators(RoleRating)); ok {
		record.Rating = &rating
	}

	if record.Title == "" {
		record.Title = fallbackTitle
	}
	if record.Body == "" {
		record.Body = fallbackBody
	}
	if record.Date == "" {
		record.Date = SentinelUnknownDate
	}
	if record.ReviewerName == "" {
		record.ReviewerName = SentinelAnonymous
	}
	if record.ReviewerContext == "" {
		record.ReviewerContext = SentinelUnspecified
	}

	return record, true
}

func rawTextFallback(ctx context.Context, container pageview.Element) (title, body string) {
	raw, err := container.Text(ctx)
	if err != nil {
		return "", ""
	}
	raw = strings.TrimSpace(raw)
	if len(raw) <= rawTextFallbackMin {
		return "", ""
	}

	lines := textutil.SplitLines(raw)
	if len(lines) == 0 {
		return "", ""
	}

	title = textutil.CleanReviewText(lines[0])
	if runes := []rune(title); len(runes) >= titleLengthCap {
		title = string(runes[:titleLengthCap-3]) + "..."
	}
	if len(lines) > 1 {
		body = textutil.CleanReviewText(strings.Join(lines[1:], " "))
	} else {
		body = textutil.CleanReviewText(lines[0])
	}
	return title, body
}
