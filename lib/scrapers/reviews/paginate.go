package reviews

import (
	"context"
	"fmt"
	"log/slog"

	"reviewharvest/lib/pageview"
)

// AdvanceState reports the outcome of one pagination step.
type AdvanceState int

const (
	// StateAdvanced means new containers should be visible.
	StateAdvanced AdvanceState = iota
	// StateStagnant means the step ran but the container count did not grow.
	StateStagnant
	// StateExhausted means no further content can be loaded.
	StateExhausted
)

func (s AdvanceState) String() string {
	switch s {
	case StateAdvanced:
		return "advanced"
	case StateStagnant:
		return "stagnant"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("AdvanceState(%d)", int(s))
	}
}

// maxStagnantAttempts bounds consecutive load attempts that yield no
// new containers before the driver gives up on in-page loading.
const maxStagnantAttempts = 10

// Advance describes the result of Driver.Advance. Reloaded is true
// when the step navigated to a fresh page, which resets container
// indices.
type Advance struct {
	State    AdvanceState
	Reloaded bool
}

// Driver steps through a review listing, preferring in-page load-more
// controls and infinite scroll, and falling back to numbered page
// navigation.
type Driver struct {
	view  pageview.View
	spec  LocatorSpec
	pacer Pacer

	reviewsUrl string
	page       int
	stagnant   int
}

func NewDriver(view pageview.View, spec LocatorSpec, pacer Pacer, reviewsUrl string) *Driver {
	return &Driver{view: view, spec: spec, pacer: pacer, reviewsUrl: reviewsUrl, page: 1}
}

// Page reports the current page number, starting at 1.
func (d *Driver) Page() int { return d.page }

// Advance attempts to bring more review containers into the view.
// before is the container count observed prior to the step.
func (d *Driver) Advance(ctx context.Context, before int) (Advance, error) {
	if control, ok := d.loadMoreControl(ctx); ok {
		if err := control.Click(ctx); err != nil {
			return Advance{}, fmt.Errorf("click load more: %w", err)
		}
		// let the newly requested content render before counting
		if err := d.pacer.Pause(ctx); err != nil {
			return Advance{}, err
		}
		after, err := d.countContainers(ctx)
		if err != nil {
			return Advance{}, err
		}
		if after > before {
			d.stagnant = 0
			return Advance{State: StateAdvanced}, nil
		}
		d.stagnant++
		slog.DebugContext(ctx, "load more yielded no new containers",
			"attempt", d.stagnant, "count", after)
		if d.stagnant >= maxStagnantAttempts {
			return Advance{State: StateExhausted}, nil
		}
		return Advance{State: StateStagnant}, nil
	}

	if err := d.view.ScrollToEnd(ctx); err != nil {
		return Advance{}, fmt.Errorf("scroll to end: %w", err)
	}
	// lazy loaders fetch on scroll, counting immediately would miss
	// anything still in flight
	if err := d.pacer.Pause(ctx); err != nil {
		return Advance{}, err
	}
	after, err := d.countContainers(ctx)
	if err != nil {
		return Advance{}, err
	}
	if after > before {
		d.stagnant = 0
		return Advance{State: StateAdvanced}, nil
	}

	if !d.hasNextPage(ctx) {
		return Advance{State: StateExhausted}, nil
	}
	d.page++
	next := pageUrl(d.reviewsUrl, d.page)
	if err := d.view.Navigate(ctx, next); err != nil {
		return Advance{}, fmt.Errorf("navigate to page %d: %w", d.page, err)
	}
	d.stagnant = 0
	return Advance{State: StateAdvanced, Reloaded: true}, nil
}

func (d *Driver) countContainers(ctx context.Context) (int, error) {
	containers, err := findContainers(ctx, d.view, d.spec)
	if err != nil {
		return 0, err
	}
	return len(containers), nil
}

// loadMoreControl returns the first enabled load-more control, if any.
func (d *Driver) loadMoreControl(ctx context.Context) (pageview.Element, bool) {
	return firstEnabled(ctx, d.view, d.spec.Locators(RoleLoadMore))
}

func (d *Driver) hasNextPage(ctx context.Context) bool {
	_, ok := firstEnabled(ctx, d.view, d.spec.Locators(RoleNextPage))
	return ok
}

func firstEnabled(ctx context.Context, view pageview.View, locators []string) (pageview.Element, bool) {
	for _, locator := range locators {
		elements, err := view.FindAll(ctx, locator)
		if err != nil {
			continue
		}
		for _, el := range elements {
			enabled, err := el.Enabled(ctx)
			if err != nil || !enabled {
				continue
			}
			return el, true
		}
	}
	return nil, false
}

// findContainers returns the review containers on the current page,
// trying each container locator in order and keeping the first that
// matches anything.
func findContainers(ctx context.Context, view pageview.View, spec LocatorSpec) ([]pageview.Element, error) {
	var lastErr error
	for _, locator := range spec.Locators(RoleContainer) {
		elements, err := view.FindAll(ctx, locator)
		if err != nil {
			lastErr = err
			continue
		}
		if len(elements) > 0 {
			return elements, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("find review containers: %w", lastErr)
	}
	return nil, nil
}
