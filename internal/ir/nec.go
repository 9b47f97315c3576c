// Package ir decodes the two remote protocols sharing the badge's IR
// input, builds NEC pulse trains for the blaster, and maps received
// codes to orchestrator intents.
package ir

import "time"

// Message is a decoded remote command. For NEC, Addr and Cmd are the
// 8-bit address and command bytes; for RC5 they are the 5-bit address
// and 6-bit command.
type Message struct {
	Addr, Cmd uint8
	Repeat    bool
}

// NEC timing, microseconds. The receiver demodulates the 38 kHz carrier,
// so a "mark" here is carrier present (line pulled low).
const (
	necLeaderMark  = 9000
	necLeaderSpace = 4500
	necRepeatSpace = 2250
	necBitMark     = 562
	necZeroSpace   = 562
	necOneSpace    = 1687
	necTolerance   = 300
)

type necState uint8

const (
	necIdle necState = iota
	necLeader
	necBitStart
	necBitSpace
)

// NecDecoder consumes timestamped edges and yields messages. Timestamps
// are microseconds from any monotonic source; only differences matter.
type NecDecoder struct {
	state necState
	bits  uint32
	n     int
	lastT uint64

	lastAddr uint8
	lastCmd  uint8
	haveLast bool
}

func within(d, target uint64) bool {
	return d+necTolerance >= target && d <= target+necTolerance
}

// Edge feeds one transition. level is the line level after the edge
// (true = high = idle for the active-low receiver). Returns a message
// when a full frame or a repeat code has been decoded.
func (d *NecDecoder) Edge(level bool, t uint64) (Message, bool) {
	dur := t - d.lastT
	d.lastT = t

	if !level {
		// Mark begins; the preceding span was a space.
		switch d.state {
		case necLeader:
			switch {
			case within(dur, necLeaderSpace):
				d.state = necBitStart
				d.bits = 0
				d.n = 0
			case within(dur, necRepeatSpace) && d.haveLast:
				d.state = necIdle
				return Message{Addr: d.lastAddr, Cmd: d.lastCmd, Repeat: true}, true
			default:
				d.state = necIdle
			}
		case necBitSpace:
			if within(dur, necZeroSpace) {
				d.n++
			} else if within(dur, necOneSpace) {
				d.bits |= 1 << uint(d.n)
				d.n++
			} else {
				d.state = necIdle
				return Message{}, false
			}
			d.state = necBitStart
		}
		return Message{}, false
	}

	// Mark ends.
	switch d.state {
	case necIdle:
		if dur >= necLeaderMark-2000 && dur <= necLeaderMark+2000 {
			d.state = necLeader
		}
	case necBitStart:
		if !within(dur, necBitMark) {
			d.state = necIdle
			return Message{}, false
		}
		if d.n == 32 {
			d.state = necIdle
			return d.finish()
		}
		d.state = necBitSpace
	}
	return Message{}, false
}

func (d *NecDecoder) finish() (Message, bool) {
	addr := uint8(d.bits)
	cmd := uint8(d.bits >> 16)
	cmdInv := uint8(d.bits >> 24)
	if cmd^cmdInv != 0xFF {
		return Message{}, false
	}
	d.lastAddr, d.lastCmd, d.haveLast = addr, cmd, true
	return Message{Addr: addr, Cmd: cmd}, true
}

// Pulse is one span of the transmit schedule. Mark spans carry the
// 38 kHz carrier, spaces are dark.
type Pulse struct {
	Mark bool
	Dur  time.Duration
}

// NecPulses builds the transmit schedule for one NEC frame, or the short
// repeat frame. Bits go out LSB first: addr, ~addr, cmd, ~cmd.
func NecPulses(addr, cmd uint8, repeat bool) []Pulse {
	mark := func(us int) Pulse { return Pulse{Mark: true, Dur: time.Duration(us) * time.Microsecond} }
	space := func(us int) Pulse { return Pulse{Dur: time.Duration(us) * time.Microsecond} }

	if repeat {
		return []Pulse{mark(necLeaderMark), space(necRepeatSpace), mark(necBitMark)}
	}

	pulses := make([]Pulse, 0, 2+64+1)
	pulses = append(pulses, mark(necLeaderMark), space(necLeaderSpace))
	word := uint32(addr) | uint32(^addr)<<8 | uint32(cmd)<<16 | uint32(^cmd)<<24
	for i := 0; i < 32; i++ {
		pulses = append(pulses, mark(necBitMark))
		if word&(1<<uint(i)) != 0 {
			pulses = append(pulses, space(necOneSpace))
		} else {
			pulses = append(pulses, space(necZeroSpace))
		}
	}
	pulses = append(pulses, mark(necBitMark))
	return pulses
}
