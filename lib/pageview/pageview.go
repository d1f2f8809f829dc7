// Package pageview abstracts "whatever is currently rendered" in a
// live browser page behind a small query/act surface. Scraping engines
// borrow a View for the duration of one crawl, they never own it.
package pageview

import (
	"context"
	"errors"
)

// ErrNoMatch is returned by FindOne when the locator resolves to
// nothing. Callers running locator cascades treat it as a miss, not a
// failure.
var ErrNoMatch = errors.New("no element matched the locator")

// ErrSessionLost marks the underlying browser session as unusable.
var ErrSessionLost = errors.New("page session is unusable")

// Element is a handle to one node of the rendered page. Handles go
// stale when the view re-navigates, do not hold them across pages.
type Element interface {
	Text(ctx context.Context) (string, error)
	// Attribute returns the attribute value and whether it exists at all.
	Attribute(ctx context.Context, name string) (string, bool, error)
	Click(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
}

// View is the capability a crawl engine consumes. Implementations are
// not safe for concurrent use, a crawl owns its view exclusively.
type View interface {
	Navigate(ctx context.Context, address string) error
	// FindAll returns every element matching the locator, possibly none.
	// It does not wait for elements to appear.
	FindAll(ctx context.Context, locator string) ([]Element, error)
	// FindOne resolves a single sub-element of container, returning
	// ErrNoMatch when the locator matches nothing.
	FindOne(ctx context.Context, container Element, locator string) (Element, error)
	// RunScript evaluates a javascript function expression in the page.
	RunScript(ctx context.Context, code string) error
	ScrollBy(ctx context.Context, amount int) error
	ScrollToEnd(ctx context.Context) error
}
