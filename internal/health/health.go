// Package health provides periodic dependency health polling for the intake
// service.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is implemented by components that expose a health probe (session
// store, oracle provider, archive backend). HealthPing returns nil when the
// component is healthy.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// PingerFunc adapts a bare function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) HealthPing(ctx context.Context) error { return f(ctx) }

// Checker polls one dependency and caches its latest state.
type Checker struct {
	name    string
	pinger  Pinger
	healthy atomic.Bool
	log     zerolog.Logger
}

func NewChecker(name string, p Pinger, log zerolog.Logger) *Checker {
	return &Checker{name: name, pinger: p, log: log}
}

func (c *Checker) Name() string { return c.name }

// IsHealthy returns the cached state from the most recent probe.
func (c *Checker) IsHealthy() bool { return c.healthy.Load() }

// Start polls the dependency until ctx is cancelled, logging transitions.
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		probe := func() {
			pctx, cancel := context.WithTimeout(ctx, interval/2)
			defer cancel()
			err := c.pinger.HealthPing(pctx)
			was := c.healthy.Load()
			now := err == nil
			c.healthy.Store(now)
			if was != now {
				if now {
					c.log.Info().Str("dependency", c.name).Msg("dependency health: UP")
				} else {
					c.log.Error().Err(err).Str("dependency", c.name).Msg("dependency health: DOWN")
				}
			}
		}

		probe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe()
			}
		}
	}()
}

// Monitor aggregates checkers into the service-level health flag served by
// the API.
type Monitor struct {
	checkers []*Checker
}

func NewMonitor(checkers ...*Checker) *Monitor { return &Monitor{checkers: checkers} }

// Start launches every checker on the shared interval.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	for _, c := range m.checkers {
		c.Start(ctx, interval)
	}
}

// Healthy reports whether every dependency is currently up.
func (m *Monitor) Healthy() bool {
	for _, c := range m.checkers {
		if !c.IsHealthy() {
			return false
		}
	}
	return true
}

// Status returns per-dependency health for the detailed endpoint.
func (m *Monitor) Status() map[string]bool {
	out := make(map[string]bool, len(m.checkers))
	for _, c := range m.checkers {
		out[c.Name()] = c.IsHealthy()
	}
	return out
}
