package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCheckerTransitions(t *testing.T) {
	var fail atomic.Bool
	p := PingerFunc(func(ctx context.Context) error {
		if fail.Load() {
			return errors.New("probe failed")
		}
		return nil
	})

	c := NewChecker("store", p, zerolog.Nop())
	require.False(t, c.IsHealthy(), "unpolled checker reports unhealthy")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, 10*time.Millisecond)

	require.Eventually(t, c.IsHealthy, time.Second, 5*time.Millisecond)

	fail.Store(true)
	require.Eventually(t, func() bool { return !c.IsHealthy() }, time.Second, 5*time.Millisecond)
}

func TestMonitorAggregates(t *testing.T) {
	up := NewChecker("up", PingerFunc(func(context.Context) error { return nil }), zerolog.Nop())
	down := NewChecker("down", PingerFunc(func(context.Context) error { return errors.New("nope") }), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewMonitor(up, down)
	m.Start(ctx, 10*time.Millisecond)

	require.Eventually(t, up.IsHealthy, time.Second, 5*time.Millisecond)
	require.False(t, m.Healthy())

	status := m.Status()
	require.True(t, status["up"])
	require.False(t, status["down"])
}
