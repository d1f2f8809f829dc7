package pageview

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// the user agent review sites get, a real chrome one rather than the
// HeadlessChrome default that gets blocked on sight
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

type SessionOptions struct {
	Headless  bool
	UserAgent string
}

// Session is a chromium-backed View. One Session drives exactly one
// page, run parallel crawls in separate sessions.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	launch  *launcher.Launcher
}

var _ View = (*Session)(nil)

// NewSession launches a chromium instance hardened against the usual
// automation tells and opens a stealth page in it.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	launch := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", "1920,1080").
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-extensions").
		// skipping images loads pages noticeably faster
		Set("blink-settings", "imagesEnabled=false").
		Set("user-agent", ua).
		Delete("enable-automation")

	controlUrl, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlUrl).Context(ctx)
	err = browser.Connect()
	if err != nil {
		launch.Cleanup()
		return nil, fmt.Errorf("%w: %s", ErrSessionLost, err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		launch.Cleanup()
		return nil, fmt.Errorf("%w: %s", ErrSessionLost, err)
	}

	return &Session{
		browser: browser,
		page:    page,
		launch:  launch,
	}, nil
}

func (s *Session) Close() error {
	err := s.browser.Close()
	s.launch.Cleanup()
	return err
}

func (s *Session) Navigate(ctx context.Context, address string) error {
	page := s.page.Context(ctx)
	err := page.Navigate(address)
	if err != nil {
		return err
	}
	return page.WaitLoad()
}

func (s *Session) FindAll(ctx context.Context, locator string) ([]Element, error) {
	els, err := s.page.Context(ctx).Elements(locator)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, rodElement{el: el})
	}
	return out, nil
}

func (s *Session) FindOne(ctx context.Context, container Element, locator string) (Element, error) {
	parent, ok := container.(rodElement)
	if !ok {
		return nil, fmt.Errorf("container element does not belong to this session")
	}
	// NotFoundSleeper: resolve immediately instead of polling for the
	// element to appear, a missing sub-element is an expected outcome
	el, err := parent.el.Context(ctx).Sleeper(rod.NotFoundSleeper).Element(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, locator)
	}
	return rodElement{el: el}, nil
}

func (s *Session) RunScript(ctx context.Context, code string) error {
	_, err := s.page.Context(ctx).Eval(code)
	return err
}

func (s *Session) ScrollBy(ctx context.Context, amount int) error {
	_, err := s.page.Context(ctx).Eval(`(y) => window.scrollBy(0, y)`, amount)
	return err
}

func (s *Session) ScrollToEnd(ctx context.Context) error {
	_, err := s.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e rodElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (e rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e rodElement) Enabled(ctx context.Context) (bool, error) {
	_, exists, err := e.Attribute(ctx, "disabled")
	if err != nil {
		return false, err
	}
	return !exists, nil
}
