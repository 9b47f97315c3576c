package bus

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// MaxSubscribers bounds the fan-out; task wiring happens once at
	// startup so exceeding it is fatal there.
	MaxSubscribers = 8
	// QueueDepth is each subscriber's buffer. A slow consumer loses its
	// oldest pending command rather than stalling publishers.
	QueueDepth = 8
)

// Bus is a multi-producer broadcast channel. Per-publisher order is
// preserved to every subscriber; nothing is guaranteed about the
// interleaving of different publishers.
type Bus struct {
	mu   sync.Mutex
	subs []*Subscription
	log  zerolog.Logger
}

// Subscription is one task's view of the bus.
type Subscription struct {
	name string
	ch   chan Command
}

// New returns an empty bus.
func New(log zerolog.Logger) *Bus {
	return &Bus{log: log}
}

// Subscribe registers a named subscriber. All subscriptions are taken
// before tasks spawn.
func (b *Bus) Subscribe(name string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) >= MaxSubscribers {
		panic(fmt.Sprintf("bus: more than %d subscribers", MaxSubscribers))
	}
	s := &Subscription{name: name, ch: make(chan Command, QueueDepth)}
	b.subs = append(b.subs, s)
	return s
}

// Publish delivers c to every subscriber, dropping the oldest queued
// command of any subscriber whose queue is full.
func (b *Bus) Publish(c Command) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		select {
		case s.ch <- c:
		default:
			select {
			case dropped := <-s.ch:
				b.log.Debug().
					Str("subscriber", s.name).
					Str("dropped", fmt.Sprintf("%T", dropped)).
					Msg("bus queue full")
			default:
			}
			select {
			case s.ch <- c:
			default:
			}
		}
	}
}

// C exposes the subscriber's channel for select loops.
func (s *Subscription) C() <-chan Command { return s.ch }

// TryRecv drains at most one pending command without blocking.
func (s *Subscription) TryRecv() (Command, bool) {
	select {
	case c := <-s.ch:
		return c, true
	default:
		return nil, false
	}
}
