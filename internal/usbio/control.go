// Package usbio hosts the tasks behind the badge's composite USB
// interface: the serial control channel, the MIDI control surface and
// the HID keystroke sender.
package usbio

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/wire"
)

// Control reads wire frames from the serial control device and publishes
// the decoded commands.
type Control struct {
	R   io.Reader
	Bus *bus.Bus
	Log zerolog.Logger
}

// Run loops until the context is cancelled or the device goes away. A
// short frame keeps buffering; any other decode error throws the buffer
// away and raises the error signal.
func (c *Control) Run(ctx context.Context) {
	buf := make([]byte, 0, 256)
	chunk := make([]byte, 64)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := c.R.Read(chunk)
		if n > 0 {
			c.Bus.Publish(bus.Activity{})
			buf = append(buf, chunk[:n]...)
			buf = c.drain(buf)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.Log.Warn().Err(err).Msg("control read failed")
			}
			return
		}
	}
}

func (c *Control) drain(buf []byte) []byte {
	for len(buf) > 0 {
		cmd, n, err := wire.Decode(buf)
		if errors.Is(err, wire.ErrShortFrame) {
			return buf
		}
		if err != nil {
			c.Log.Warn().Err(err).Int("len", len(buf)).Msg("control decode failed")
			c.Bus.Publish(bus.Failure{Err: err})
			return buf[:0]
		}
		c.Bus.Publish(cmd)
		buf = buf[n:]
	}
	return buf
}
