package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"reviewharvest/lib/pageview"
)

var tracer = otel.Tracer("scrapers/reviews")

// maxPageVisits caps how many listing pages a single crawl will visit.
const maxPageVisits = 50

var ErrCompanyNotFound = errors.New("company not found on source")

// An AddressResolver maps a company name to its product page url on a
// review source. An empty url with a nil error means no match.
type AddressResolver interface {
	Resolve(ctx context.Context, company string, source Source) (string, error)
}

// Crawler drives a full review collection run against one source.
type Crawler struct {
	View     pageview.View
	Registry Registry
	Pacer    Pacer
	Resolver AddressResolver
}

// Crawl collects up to targetCount reviews for the given company. A
// targetCount of zero or less collects everything the source will
// serve within the page ceiling.
//
// Failures partway through a run return the records collected so far.
// Only failures to reach the site at all surface as errors.
func (c *Crawler) Crawl(ctx context.Context, company string, source Source, targetCount int) ([]ReviewRecord, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()
	span.SetAttributes(
		attribute.String("company", company),
		attribute.String("source", string(source)),
	)

	spec, err := c.Registry.Spec(source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown source")
		return nil, err
	}

	productUrl, err := c.Resolver.Resolve(ctx, company, source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return nil, fmt.Errorf("resolve %q on %s: %w", company, source, err)
	}
	if productUrl == "" {
		return nil, fmt.Errorf("%w: %q on %s", ErrCompanyNotFound, company, source)
	}

	reviewsUrl := source.ReviewsUrl(productUrl)
	slog.InfoContext(ctx, "starting review crawl",
		"company", company, "source", source, "url", reviewsUrl)

	if err := c.View.Navigate(ctx, reviewsUrl); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return nil, fmt.Errorf("open %s: %w", reviewsUrl, err)
	}
	if err := c.Pacer.Pause(ctx); err != nil {
		return nil, err
	}
	if err := c.Pacer.Simulate(ctx, c.View); err != nil {
		slog.DebugContext(ctx, "page activity simulation failed", "err", err)
	}

	assembler := &Assembler{View: c.View, Spec: spec, Source: source}
	driver := NewDriver(c.View, spec, c.Pacer, reviewsUrl)

	var records []ReviewRecord
	consumed := 0
	for {
		containers, err := findContainers(ctx, c.View, spec)
		if err != nil {
			slog.WarnContext(ctx, "lost access to review containers, returning partial results",
				"collected", len(records), "err", err)
			span.RecordError(err)
			break
		}
		for i := consumed; i < len(containers); i++ {
			if targetCount > 0 && len(records) >= targetCount {
				break
			}
			record, ok := c.assembleSafely(ctx, assembler, containers[i], i)
			if ok {
				records = append(records, record)
			}
		}
		consumed = len(containers)

		if targetCount > 0 && len(records) >= targetCount {
			break
		}
		if driver.Page() >= maxPageVisits {
			slog.InfoContext(ctx, "page ceiling reached", "pages", driver.Page())
			break
		}
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			break
		}

		if err := c.Pacer.Pause(ctx); err != nil {
			break
		}
		adv, err := driver.Advance(ctx, len(containers))
		if err != nil {
			slog.WarnContext(ctx, "pagination failed, returning partial results",
				"collected", len(records), "page", driver.Page(), "err", err)
			span.RecordError(err)
			break
		}
		switch adv.State {
		case StateExhausted:
			slog.InfoContext(ctx, "source exhausted",
				"collected", len(records), "pages", driver.Page())
			span.SetAttributes(attribute.Bool("exhausted", true))
		case StateAdvanced:
			if adv.Reloaded {
				consumed = 0
				if err := c.Pacer.Simulate(ctx, c.View); err != nil {
					slog.DebugContext(ctx, "page activity simulation failed", "err", err)
				}
			}
		}
		if adv.State == StateExhausted {
			break
		}
	}

	span.SetAttributes(attribute.Int("collected", len(records)))
	slog.InfoContext(ctx, "review crawl finished",
		"company", company, "source", source, "collected", len(records))
	return records, nil
}

// assembleSafely shields the crawl from a single malformed container.
func (c *Crawler) assembleSafely(ctx context.Context, assembler *Assembler, container pageview.Element, index int) (record ReviewRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.WarnContext(ctx, "skipping review container after panic",
				"index", index, "panic", r)
			ok = false
		}
	}()
	return assembler.Assemble(ctx, container)
}
