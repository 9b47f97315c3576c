// Package statusled drives the single mono status LED next to the
// matrix. It signals errors and host activity with distinct blink
// patterns.
package statusled

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
)

// Line is the LED pin. *gpiocdev.Line satisfies it.
type Line interface {
	SetValue(v int) error
}

// Blink timings.
const (
	errorPulse    = 60 * time.Millisecond
	activityPulse = 150 * time.Millisecond
)

// Status consumes Failure and Activity events. An error shows four fast
// pulses, host activity a slow double pulse. An error pattern is never
// interrupted by activity.
type Status struct {
	Sub *bus.Subscription
	LED Line
	Log zerolog.Logger
}

// Run loops forever until the context is cancelled.
func (s *Status) Run(ctx context.Context) {
	defer func() { _ = s.LED.SetValue(0) }()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.Sub.C():
			switch c := cmd.(type) {
			case bus.Failure:
				s.Log.Warn().Err(c.Err).Msg("failure signalled")
				s.blink(ctx, 4, errorPulse)
			case bus.Activity:
				s.blink(ctx, 2, activityPulse)
			}
		}
	}
}

func (s *Status) blink(ctx context.Context, n int, d time.Duration) {
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return
		}
		_ = s.LED.SetValue(1)
		sleep(ctx, d)
		_ = s.LED.SetValue(0)
		sleep(ctx, d)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
