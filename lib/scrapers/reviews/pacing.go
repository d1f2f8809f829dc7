package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"reviewharvest/lib/pageview"
)

const (
	defaultMinDelay = 2 * time.Second
	defaultMaxDelay = 8 * time.Second

	minScrollPx = 200
	maxScrollPx = 800
)

// A Pacer spaces out page interactions so request timing does not
// follow a fixed cadence.
type Pacer interface {
	// Pause blocks for some interval before the next page action.
	Pause(ctx context.Context) error
	// Simulate performs incidental activity on the current page.
	Simulate(ctx context.Context, view pageview.View) error
}

// RandomPacer sleeps a random interval in [MinDelay, MaxDelay] and
// scrolls and moves the pointer between actions.
type RandomPacer struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewRandomPacer() *RandomPacer {
	return &RandomPacer{MinDelay: defaultMinDelay, MaxDelay: defaultMaxDelay}
}

func (p *RandomPacer) Pause(ctx context.Context) error {
	minMs := int(p.MinDelay.Milliseconds())
	maxMs := int(p.MaxDelay.Milliseconds())
	if maxMs <= minMs {
		maxMs = minMs + 1
	}
	ms, err := random.IntRange(minMs, maxMs)
	if err != nil {
		return fmt.Errorf("pick delay: %w", err)
	}
	return sleep(ctx, time.Duration(ms)*time.Millisecond)
}

const mouseMoveScript = `() => {
	const event = new MouseEvent('mousemove', {
		view: window,
		bubbles: true,
		cancelable: true,
		clientX: Math.random() * window.innerWidth,
		clientY: Math.random() * window.innerHeight,
	});
	document.dispatchEvent(event);
}`

func (p *RandomPacer) Simulate(ctx context.Context, view pageview.View) error {
	down, err := random.IntRange(minScrollPx, maxScrollPx)
	if err != nil {
		return fmt.Errorf("pick scroll distance: %w", err)
	}
	if err := view.ScrollBy(ctx, down); err != nil {
		return err
	}
	if err := sleep(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	// Scroll part of the way back up, the way a reader skims.
	if err := view.ScrollBy(ctx, -down/3); err != nil {
		return err
	}
	if err := view.RunScript(ctx, mouseMoveScript); err != nil {
		slog.DebugContext(ctx, "mouse move simulation failed", "err", err)
	}
	return nil
}

// NopPacer performs no delays or page activity.
type NopPacer struct{}

func (NopPacer) Pause(ctx context.Context) error { return ctx.Err() }

func (NopPacer) Simulate(ctx context.Context, view pageview.View) error { return ctx.Err() }

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
