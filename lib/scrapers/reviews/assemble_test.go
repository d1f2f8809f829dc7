package reviews

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"reviewharvest/lib/pageview/fakeview"
	"reviewharvest/lib/telemetry"
)

var testSpec = LocatorSpec{
	RoleContainer:       {".review"},
	RoleTitle:           {".title"},
	RoleBody:            {".body"},
	RoleDate:            {".date"},
	RoleRating:          {".stars"},
	RoleReviewerName:    {".reviewer"},
	RoleReviewerContext: {".reviewer-info"},
	RolePros:            {".pros"},
	RoleCons:            {".cons"},
	RoleLoadMore:        {".load-more"},
	RoleNextPage:        {".next"},
}

func fullReviewContainer() *fakeview.Element {
	return &fakeview.Element{
		Children: map[string]*fakeview.Element{
			".title":         {TextContent: "Solid tool"},
			".body":          {TextContent: "Does what it says on the tin."},
			".date":          {TextContent: "March 5, 2024"},
			".stars":         {Attrs: map[string]string{"aria-label": "4.5 out of 5 stars"}},
			".reviewer":      {TextContent: "Jordan P."},
			".reviewer-info": {TextContent: "Mid-Market (51-1000 emp.)"},
			".pros":          {TextContent: "Fast onboarding"},
			".cons":          {TextContent: "Pricey at scale"},
		},
	}
}

func TestAssembleFullReview(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceG2}

	record, ok := a.Assemble(ctx, fullReviewContainer())
	require.True(t, ok)
	require.Equal(t, "Solid tool", record.Title)
	require.Equal(t, "Does what it says on the tin.", record.Body)
	require.Equal(t, "2024-03-05", record.Date)
	require.NotNil(t, record.Rating)
	require.Equal(t, 4.5, *record.Rating)
	require.Equal(t, "Jordan P.", record.ReviewerName)
	require.Equal(t, "Mid-Market (51-1000 emp.)", record.ReviewerContext)
	require.Equal(t, "Fast onboarding", record.Pros)
	require.Equal(t, "Pricey at scale", record.Cons)
	require.Equal(t, SourceG2, record.Source)
}

func TestAssembleIsIdempotent(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceG2}
	container := fullReviewContainer()

	first, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	second, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	require.Empty(t, cmp.Diff(first, second))
}

func TestAssembleSentinels(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceCapterra}

	// only a body resolves, so every other field takes its sentinel
	container := &fakeview.Element{
		Children: map[string]*fakeview.Element{
			".body": {TextContent: "Just the body text here."},
		},
	}

	record, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	require.Equal(t, fallbackTitle, record.Title)
	require.Equal(t, "Just the body text here.", record.Body)
	require.Equal(t, SentinelUnknownDate, record.Date)
	require.Equal(t, SentinelAnonymous, record.ReviewerName)
	require.Equal(t, SentinelUnspecified, record.ReviewerContext)
	require.Nil(t, record.Rating)
}

func TestAssembleMinimumContentRule(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceG2}

	// no title, no body, reviewer name too short to count as content
	container := &fakeview.Element{
		Children: map[string]*fakeview.Element{
			".reviewer": {TextContent: "JP"},
		},
	}
	_, ok := a.Assemble(ctx, container)
	require.False(t, ok)

	// a longer reviewer name alone is enough to keep the record
	container = &fakeview.Element{
		Children: map[string]*fakeview.Element{
			".reviewer": {TextContent: "Jordan"},
		},
	}
	record, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	require.Equal(t, "Jordan", record.ReviewerName)
	require.Equal(t, fallbackTitle, record.Title)
	require.Equal(t, fallbackBody, record.Body)
}

func TestAssembleRawTextFallback(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceTrustRadius}

	container := &fakeview.Element{
		TextContent: "Changed our workflow overnight\nWe migrated in a week and never looked back.",
	}
	record, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	require.Equal(t, "Changed our workflow overnight", record.Title)
	require.Equal(t, "We migrated in a week and never looked back.", record.Body)
}

func TestAssembleRawTextFallbackTruncatesLongTitle(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceG2}

	long := strings.Repeat("a", 150)
	container := &fakeview.Element{TextContent: long}
	record, ok := a.Assemble(ctx, container)
	require.True(t, ok)
	require.Len(t, record.Title, 100)
	require.True(t, strings.HasSuffix(record.Title, "..."))
}

func TestAssembleSkipsShortRawText(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	a := Assembler{View: view, Spec: testSpec, Source: SourceG2}

	container := &fakeview.Element{TextContent: "Helpful? Yes"}
	_, ok := a.Assemble(ctx, container)
	require.False(t, ok)
}
