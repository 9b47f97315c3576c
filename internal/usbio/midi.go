package usbio

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/matrix"
)

// noteOn is the MIDI status nibble for note-on.
const noteOn = 0x90

// Midi turns note-on messages into raw framebuffer pixel writes. Notes
// are grouped three per pixel, one per color channel, laid out
// left-to-right from the player's point of view, which mirrors the X
// axis relative to the matrix.
type Midi struct {
	R   io.Reader
	Bus *bus.Bus
	Log zerolog.Logger
}

// Run parses the raw MIDI byte stream until the context is cancelled or
// the device goes away. Running status is not supported; every message
// must carry its status byte.
func (m *Midi) Run(ctx context.Context) {
	buf := make([]byte, 0, 64)
	chunk := make([]byte, 64)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := m.R.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = m.drain(buf)
		}
		if err != nil {
			if err != io.EOF {
				m.Log.Warn().Err(err).Msg("midi read failed")
			}
			return
		}
	}
}

func (m *Midi) drain(buf []byte) []byte {
	for len(buf) > 0 {
		if buf[0]&0x80 == 0 {
			// Desynchronized; skip to the next status byte.
			buf = buf[1:]
			continue
		}
		if buf[0]&0xF0 != noteOn {
			buf = buf[1:]
			continue
		}
		if len(buf) < 3 {
			return buf
		}
		if cmd, ok := NoteOn(buf[1], buf[2]); ok {
			m.Bus.Publish(cmd)
		}
		buf = buf[3:]
	}
	return buf
}

// NoteOn maps one note-on message to a pixel write. Notes beyond the
// matrix are ignored. Velocity spans half the channel range, so it is
// doubled on the way in.
func NoteOn(key, velocity uint8) (bus.MidiSetPixel, bool) {
	pixel := int(key) / 3
	if pixel >= matrix.Size {
		return bus.MidiSetPixel{}, false
	}
	x := pixel % matrix.Width
	y := pixel / matrix.Width
	return bus.MidiSetPixel{
		X:       matrix.Width - 1 - x,
		Y:       y,
		Channel: int(key) % 3,
		Value:   velocity * 2,
	}, true
}
