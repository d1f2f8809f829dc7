package reviews

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"reviewharvest/lib/pageview/fakeview"
	"reviewharvest/lib/telemetry"
)

type stubResolver struct {
	url string
	err error
}

func (r stubResolver) Resolve(ctx context.Context, company string, source Source) (string, error) {
	return r.url, r.err
}

func reviewContainers(page int, n int) []*fakeview.Element {
	els := make([]*fakeview.Element, n)
	for i := range els {
		els[i] = &fakeview.Element{
			Children: map[string]*fakeview.Element{
				".title": {TextContent: fmt.Sprintf("Review %d on page %d", i+1, page)},
				".body":  {TextContent: "Works fine for our team."},
			},
		}
	}
	return els
}

func testCrawler(view *fakeview.View) *Crawler {
	return &Crawler{
		View:     view,
		Registry: Registry{SourceG2: testSpec},
		Pacer:    NopPacer{},
		Resolver: stubResolver{url: "https://example.com/products/acme"},
	}
}

func TestCrawlTwoPages(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	first := &fakeview.Page{}
	first.Add(".review", reviewContainers(1, 8)...)
	// containers matched by the broad locator that aren't reviews
	first.Add(".review", &fakeview.Element{}, &fakeview.Element{})
	first.Add(".next", &fakeview.Element{})
	second := &fakeview.Page{}
	second.Add(".review", reviewContainers(2, 5)...)
	view.AddPage("https://example.com/products/acme/reviews", first)
	view.AddPage("https://example.com/products/acme/reviews?page=2", second)

	// a target far beyond what the source can serve still terminates
	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 100)
	require.NoError(t, err)
	require.Len(t, records, 13)
	require.Equal(t, "Review 1 on page 1", records[0].Title)
	require.Equal(t, "Review 5 on page 2", records[12].Title)
	for _, record := range records {
		require.Equal(t, SourceG2, record.Source)
	}
}

func TestCrawlStopsAtTargetCount(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	page := &fakeview.Page{}
	page.Add(".review", reviewContainers(1, 10)...)
	view.AddPage("https://example.com/products/acme/reviews", page)

	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 5)
	require.NoError(t, err)
	require.Len(t, records, 5)
}

func TestCrawlPartialResultsOnPaginationFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	first := &fakeview.Page{}
	first.Add(".review", reviewContainers(1, 10)...)
	first.Add(".next", &fakeview.Element{})
	// page 2 never registered, so advancing to it fails
	view.AddPage("https://example.com/products/acme/reviews", first)

	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 0)
	require.NoError(t, err)
	require.Len(t, records, 10)
}

func TestCrawlCompanyNotFound(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	c := testCrawler(fakeview.New())
	c.Resolver = stubResolver{url: ""}

	_, err := c.Crawl(ctx, "Nonexistent Co", SourceG2, 0)
	require.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCrawlNavigationFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	view.NavigateErr = errors.New("connection refused")

	_, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 0)
	require.Error(t, err)
}

func TestCrawlStopsAtPageCeiling(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	// a source that keeps advertising a next page well past the ceiling
	view := fakeview.New()
	for p := 1; p <= 60; p++ {
		page := &fakeview.Page{}
		page.Add(".review", reviewContainers(p, 1)...)
		page.Add(".next", &fakeview.Element{})
		address := "https://example.com/products/acme/reviews"
		if p > 1 {
			address = fmt.Sprintf("%s?page=%d", address, p)
		}
		view.AddPage(address, page)
	}

	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 0)
	require.NoError(t, err)
	require.Len(t, records, 50)
	require.Equal(t, "Review 1 on page 50", records[49].Title)
	require.NotContains(t, view.Navigations,
		"https://example.com/products/acme/reviews?page=51")
}

func TestCrawlSurvivesFaultyContainers(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	page := &fakeview.Page{}
	page.Add(".review", reviewContainers(1, 3)...)
	// one container panics on any read, one errors
	page.Add(".review", &fakeview.Element{PanicOnRead: true})
	page.Add(".review", &fakeview.Element{Err: errors.New("node detached")})
	view.AddPage("https://example.com/products/acme/reviews", page)

	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Review 1 on page 1", records[0].Title)
}

func TestCrawlSkipsEmptyContainers(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	view := fakeview.New()
	page := &fakeview.Page{}
	page.Add(".review", reviewContainers(1, 3)...)
	// ad slots matched by the container locator carry no review fields
	page.Add(".review", &fakeview.Element{}, &fakeview.Element{})
	view.AddPage("https://example.com/products/acme/reviews", page)

	records, err := testCrawler(view).Crawl(ctx, "Acme", SourceG2, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestCrawlUnknownSource(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reviews")
	defer cleanup()
	ctx := context.Background()

	_, err := testCrawler(fakeview.New()).Crawl(ctx, "Acme", Source("bogus"), 0)
	require.Error(t, err)
}
