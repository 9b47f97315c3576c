// Package wire frames the serial control protocol between the host CLI
// and the badge daemon. Frames are length-prefixed: one length byte
// counting the rest, a type byte, then the fixed payload for that type.
package wire

import (
	"errors"
	"fmt"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/render"
)

// Message types.
const (
	MsgSetFrameBuffer byte = 0x01
	MsgSetSolidColor  byte = 0x02
	MsgSendNec        byte = 0x03
)

// ErrShortFrame means the buffer holds an incomplete frame: keep
// buffering. Any other decode error means the buffer is garbage and must
// be discarded.
var ErrShortFrame = errors.New("wire: short frame")

// Decode parses one frame from the head of buf, returning the command it
// carries and the number of bytes consumed.
func Decode(buf []byte) (bus.Command, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrShortFrame
	}
	n := int(buf[0])
	if n < 1 {
		return nil, 0, fmt.Errorf("wire: bad frame length %d", n)
	}
	if len(buf) < 1+n {
		return nil, 0, ErrShortFrame
	}
	body := buf[1 : 1+n]
	payload := body[1:]

	switch body[0] {
	case MsgSetFrameBuffer:
		if len(payload) != matrix.Size*3 {
			return nil, 0, fmt.Errorf("wire: framebuffer payload is %d bytes", len(payload))
		}
		var f matrix.Frame
		for i := range f {
			f[i] = matrix.Pixel{R: payload[i*3], G: payload[i*3+1], B: payload[i*3+2]}
		}
		return bus.SetMode{Mode: bus.RawFramebuffer(f)}, 1 + n, nil

	case MsgSetSolidColor:
		if len(payload) != 3 {
			return nil, 0, fmt.Errorf("wire: solid color payload is %d bytes", len(payload))
		}
		cmd := render.NewCommand()
		cmd.Color = render.Solid(matrix.Pixel{R: payload[0], G: payload[1], B: payload[2]})
		return bus.SetMode{Mode: bus.Special(cmd)}, 1 + n, nil

	case MsgSendNec:
		if len(payload) != 3 {
			return nil, 0, fmt.Errorf("wire: nec payload is %d bytes", len(payload))
		}
		return bus.SendNec{Addr: payload[0], Cmd: payload[1], Repeat: payload[2] != 0}, 1 + n, nil
	}
	return nil, 0, fmt.Errorf("wire: unknown message type 0x%02x", body[0])
}

func frame(typ byte, payload []byte) []byte {
	out := make([]byte, 0, 2+len(payload))
	out = append(out, byte(1+len(payload)), typ)
	return append(out, payload...)
}

// EncodeSetFrameBuffer frames a full 9-pixel buffer.
func EncodeSetFrameBuffer(f matrix.Frame) []byte {
	payload := make([]byte, 0, matrix.Size*3)
	for _, p := range f {
		payload = append(payload, p.R, p.G, p.B)
	}
	return frame(MsgSetFrameBuffer, payload)
}

// EncodeSetSolidColor frames a solid color fill.
func EncodeSetSolidColor(p matrix.Pixel) []byte {
	return frame(MsgSetSolidColor, []byte{p.R, p.G, p.B})
}

// EncodeSendNec frames an IR transmit request.
func EncodeSendNec(addr, cmd uint8, repeat bool) []byte {
	r := byte(0)
	if repeat {
		r = 1
	}
	return frame(MsgSendNec, []byte{addr, cmd, r})
}
