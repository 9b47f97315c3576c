package usbio

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
)

// KeySender emits one HID usage code as a press-and-release.
type KeySender interface {
	SendKey(code uint8) error
}

// LogKeySender is the stand-in used when no HID gadget device is
// configured. It records the keystroke and does nothing else.
type LogKeySender struct {
	Log zerolog.Logger
}

func (s LogKeySender) SendKey(code uint8) error {
	s.Log.Info().Uint8("code", code).Msg("hid keystroke")
	return nil
}

// Hid consumes keystroke requests from the bus.
type Hid struct {
	Sub    *bus.Subscription
	Bus    *bus.Bus
	Sender KeySender
	Log    zerolog.Logger
}

// Run loops forever until the context is cancelled.
func (h *Hid) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.Sub.C():
			k, ok := cmd.(bus.HidKey)
			if !ok {
				continue
			}
			if err := h.Sender.SendKey(k.Key); err != nil {
				h.Log.Warn().Err(err).Msg("hid send failed")
				h.Bus.Publish(bus.Failure{Err: err})
			}
		}
	}
}
