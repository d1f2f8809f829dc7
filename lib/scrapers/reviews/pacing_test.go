package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"reviewharvest/lib/pageview/fakeview"
)

func TestRandomPacerPause(t *testing.T) {
	p := &RandomPacer{MinDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	require.NoError(t, p.Pause(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = &RandomPacer{MinDelay: time.Second, MaxDelay: 2 * time.Second}
	require.Error(t, p.Pause(ctx))
}

func TestRandomPacerSimulate(t *testing.T) {
	view := fakeview.New()
	p := &RandomPacer{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	require.NoError(t, p.Simulate(context.Background(), view))
	// one scroll down, one partial scroll back, one synthetic mouse move
	require.Equal(t, 2, view.Scrolls)
	require.Len(t, view.Scripts, 1)
}
