package ir

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
)

// carrierHalf is half a 38 kHz carrier period.
const carrierHalf = 13158 * time.Nanosecond

// OutputLine is the blaster pin. *gpiocdev.Line satisfies it.
type OutputLine interface {
	SetValue(v int) error
}

// Transmit bit-bangs the pulse schedule, toggling the carrier during
// marks. On error the transmission is aborted with the line driven low.
func Transmit(line OutputLine, pulses []Pulse) error {
	for _, p := range pulses {
		if !p.Mark {
			if err := line.SetValue(0); err != nil {
				return fmt.Errorf("ir space: %w", err)
			}
			time.Sleep(p.Dur)
			continue
		}
		end := time.Now().Add(p.Dur)
		v := 1
		for time.Now().Before(end) {
			if err := line.SetValue(v); err != nil {
				_ = line.SetValue(0)
				return fmt.Errorf("ir mark: %w", err)
			}
			v ^= 1
			time.Sleep(carrierHalf)
		}
	}
	return line.SetValue(0)
}

// Blaster consumes transmit requests from the bus. While a frame is in
// flight the orchestrator ignores received IR, so the badge does not
// react to its own reflection.
type Blaster struct {
	Sub  *bus.Subscription
	Bus  *bus.Bus
	Line OutputLine
	Log  zerolog.Logger
}

// Run loops forever until the context is cancelled. Completion is always
// signalled, even on failure, so the transmitting flag cannot stick.
func (b *Blaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-b.Sub.C():
			req, ok := cmd.(bus.SendNec)
			if !ok {
				continue
			}
			b.Log.Debug().Uint8("addr", req.Addr).Uint8("cmd", req.Cmd).Msg("ir transmit")
			if err := Transmit(b.Line, NecPulses(req.Addr, req.Cmd, req.Repeat)); err != nil {
				b.Log.Warn().Err(err).Msg("ir transmit failed")
				b.Bus.Publish(bus.Failure{Err: err})
			}
			b.Bus.Publish(bus.NecSent{})
		}
	}
}
