// Package fakeview is a deterministic in-memory pageview.View for
// tests: pages are locator-keyed element tables, no browser involved.
package fakeview

import (
	"context"
	"fmt"

	"reviewharvest/lib/pageview"
)

// Element is a scripted element node.
type Element struct {
	TextContent string
	Attrs       map[string]string
	// Children maps a locator to the element FindOne resolves.
	Children map[string]*Element
	Disabled bool
	// OnClick runs when the element is clicked, typically mutating the
	// owning page to emulate a "load more" control.
	OnClick func()
	// Err, when set, is returned by Text and Attribute reads.
	Err error
	// PanicOnRead makes Text and Attribute panic, emulating a driver
	// fault inside element access.
	PanicOnRead bool
}

var _ pageview.Element = (*Element)(nil)

func (e *Element) Text(ctx context.Context) (string, error) {
	if e.PanicOnRead {
		panic("element read fault")
	}
	if e.Err != nil {
		return "", e.Err
	}
	return e.TextContent, nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if e.PanicOnRead {
		panic("element read fault")
	}
	if e.Err != nil {
		return "", false, e.Err
	}
	v, ok := e.Attrs[name]
	return v, ok, nil
}

func (e *Element) Click(ctx context.Context) error {
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *Element) Enabled(ctx context.Context) (bool, error) {
	return !e.Disabled, nil
}

// Page is the rendered state behind one address.
type Page struct {
	// Elements maps a locator to the elements FindAll returns.
	Elements map[string][]*Element
	// OnScrollToEnd runs when the view scrolls to its end, emulating
	// lazy loading.
	OnScrollToEnd func(p *Page)
}

func (p *Page) Add(locator string, els ...*Element) {
	if p.Elements == nil {
		p.Elements = map[string][]*Element{}
	}
	p.Elements[locator] = append(p.Elements[locator], els...)
}

// View implements pageview.View over scripted pages.
type View struct {
	Pages   map[string]*Page
	Current *Page

	// NavigateErr, when set, fails every navigation.
	NavigateErr error

	// observation log for assertions
	Navigations []string
	Lookups     []string
	Scripts     []string
	Scrolls     int
}

var _ pageview.View = (*View)(nil)

func New() *View {
	return &View{Pages: map[string]*Page{}}
}

func (v *View) AddPage(address string, p *Page) {
	v.Pages[address] = p
}

func (v *View) Navigate(ctx context.Context, address string) error {
	if v.NavigateErr != nil {
		return v.NavigateErr
	}
	p, ok := v.Pages[address]
	if !ok {
		return fmt.Errorf("no page registered for %q", address)
	}
	v.Current = p
	v.Navigations = append(v.Navigations, address)
	return nil
}

func (v *View) FindAll(ctx context.Context, locator string) ([]pageview.Element, error) {
	if v.Current == nil {
		return nil, pageview.ErrSessionLost
	}
	els := v.Current.Elements[locator]
	out := make([]pageview.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (v *View) FindOne(ctx context.Context, container pageview.Element, locator string) (pageview.Element, error) {
	v.Lookups = append(v.Lookups, locator)
	parent, ok := container.(*Element)
	if !ok {
		return nil, fmt.Errorf("container element does not belong to this view")
	}
	child, ok := parent.Children[locator]
	if !ok || child == nil {
		return nil, pageview.ErrNoMatch
	}
	return child, nil
}

func (v *View) RunScript(ctx context.Context, code string) error {
	v.Scripts = append(v.Scripts, code)
	return nil
}

func (v *View) ScrollBy(ctx context.Context, amount int) error {
	v.Scrolls++
	return nil
}

func (v *View) ScrollToEnd(ctx context.Context) error {
	v.Scrolls++
	if v.Current != nil && v.Current.OnScrollToEnd != nil {
		v.Current.OnScrollToEnd(v.Current)
	}
	return nil
}
