// Package input turns raw button edges into debounced short and long
// press events.
package input

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"

	"github.com/escbadge/minibadge/internal/bus"
)

// Default timings.
const (
	DefaultDebounce = 50 * time.Millisecond
	DefaultHold     = 1000 * time.Millisecond
)

// Event is one button edge.
type Event struct {
	Pressed bool
	Time    time.Time
}

// Machine is the pure press state machine. A press shorter than
// Debounce is bounce and ignored. A release before Hold yields a short
// press; the long press fires the moment Hold elapses, not at release,
// and the release afterwards only re-arms the machine.
type Machine struct {
	Debounce time.Duration
	Hold     time.Duration

	down      bool
	pressedAt time.Time
	longFired bool
}

// NewMachine returns a machine with the stock timings.
func NewMachine() *Machine {
	return &Machine{Debounce: DefaultDebounce, Hold: DefaultHold}
}

// Edge feeds one transition and returns the command it completes, if
// any.
func (m *Machine) Edge(pressed bool, at time.Time) (bus.Command, bool) {
	if pressed {
		if !m.down {
			m.down = true
			m.pressedAt = at
			m.longFired = false
		}
		return nil, false
	}

	if !m.down {
		return nil, false
	}
	m.down = false
	if m.longFired {
		return nil, false
	}
	held := at.Sub(m.pressedAt)
	if held < m.Debounce {
		return nil, false
	}
	if held >= m.Hold {
		// The timer should have fired already; recover if it did not.
		return bus.LongPress{}, true
	}
	return bus.ShortPress{}, true
}

// Deadline reports when Expire must be called while a press is pending.
func (m *Machine) Deadline() (time.Time, bool) {
	if m.down && !m.longFired {
		return m.pressedAt.Add(m.Hold), true
	}
	return time.Time{}, false
}

// Expire fires the long press once the hold deadline has passed.
func (m *Machine) Expire(now time.Time) (bus.Command, bool) {
	if m.down && !m.longFired && !now.Before(m.pressedAt.Add(m.Hold)) {
		m.longFired = true
		return bus.LongPress{}, true
	}
	return nil, false
}

// Button is the task wrapping the machine around an edge stream.
type Button struct {
	Events  <-chan Event
	Bus     *bus.Bus
	Log     zerolog.Logger
	Machine *Machine
}

// Run loops forever until the context is cancelled.
func (b *Button) Run(ctx context.Context) {
	m := b.Machine
	if m == nil {
		m = NewMachine()
	}
	hold := time.NewTimer(time.Hour)
	defer hold.Stop()

	rearm := func() {
		if !hold.Stop() {
			select {
			case <-hold.C:
			default:
			}
		}
		if dl, ok := m.Deadline(); ok {
			hold.Reset(time.Until(dl))
		} else {
			hold.Reset(time.Hour)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.Events:
			if cmd, ok := m.Edge(ev.Pressed, ev.Time); ok {
				b.Log.Debug().Bool("long", isLong(cmd)).Msg("button press")
				b.Bus.Publish(cmd)
			}
			rearm()
		case <-hold.C:
			if cmd, ok := m.Expire(time.Now()); ok {
				b.Log.Debug().Bool("long", true).Msg("button press")
				b.Bus.Publish(cmd)
			}
			rearm()
		}
	}
}

func isLong(c bus.Command) bool {
	_, ok := c.(bus.LongPress)
	return ok
}

// Line requests the button GPIO (active low, pulled up) and adapts its
// edges to the task's event stream.
func Line(chip string, offset int) (<-chan Event, func(), error) {
	events := make(chan Event, 16)
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(ev gpiocdev.LineEvent) {
			e := Event{
				Pressed: ev.Type == gpiocdev.LineEventFallingEdge,
				Time:    time.Now(),
			}
			select {
			case events <- e:
			default:
			}
		}))
	if err != nil {
		return nil, nil, err
	}
	return events, func() { _ = l.Close() }, nil
}
