package ir

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"

	"github.com/escbadge/minibadge/internal/bus"
)

// EdgeEvent is one transition on the IR input line. Time is a monotonic
// microsecond timestamp captured as close to the hardware as possible;
// decode accuracy depends on it, not on when the event is processed.
type EdgeEvent struct {
	Level bool // line level after the edge, true = idle high
	Time  uint64
}

// Receiver runs both protocol decoders over a shared edge stream and
// publishes decoded messages on the bus.
type Receiver struct {
	Events <-chan EdgeEvent
	Bus    *bus.Bus
	Log    zerolog.Logger
}

// Run loops forever until the context is cancelled. The RC5 decoder is
// reset after a couple of bit periods of silence so an aborted frame
// cannot swallow the next one's leading edge.
func (r *Receiver) Run(ctx context.Context) {
	var nec NecDecoder
	var rc5 Rc5Decoder
	idle := time.NewTimer(time.Hour)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.Events:
			if msg, ok := nec.Edge(ev.Level, ev.Time); ok {
				r.publish("nec", msg)
			}
			if msg, ok := rc5.Edge(ev.Level, ev.Time); ok {
				r.publish("rc5", msg)
			}
			resetTimer(idle, 4*rc5Half*time.Microsecond)
		case <-idle.C:
			rc5.Reset()
			resetTimer(idle, time.Hour)
		}
	}
}

func (r *Receiver) publish(proto string, msg Message) {
	r.Log.Debug().
		Str("proto", proto).
		Uint8("addr", msg.Addr).
		Uint8("cmd", msg.Cmd).
		Bool("repeat", msg.Repeat).
		Msg("ir received")
	r.Bus.Publish(bus.IRReceived{Addr: msg.Addr, Cmd: msg.Cmd, Repeat: msg.Repeat})
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// Line requests the IR input with kernel-timestamped edge events and
// adapts them to the decoder's stream. The returned closer releases the
// line.
func Line(chip string, offset int) (<-chan EdgeEvent, func(), error) {
	events := make(chan EdgeEvent, 64)
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(ev gpiocdev.LineEvent) {
			e := EdgeEvent{
				Level: ev.Type == gpiocdev.LineEventRisingEdge,
				Time:  uint64(ev.Timestamp / time.Microsecond),
			}
			select {
			case events <- e:
			default:
				// Losing an edge corrupts at most one frame; the remote
				// will repeat.
			}
		}))
	if err != nil {
		return nil, nil, err
	}
	return events, func() { _ = l.Close() }, nil
}
