package ir

// RC5: 14 bits of Manchester code, 889 us half-bit. A logical one puts
// the carrier in the second half of the bit cell, a zero in the first.
// Frame layout: two start bits, toggle, 5-bit address, 6-bit command.

const rc5Half = 889 // microseconds

type rc5State uint8

const (
	rc5Idle rc5State = iota
	rc5Mid1          // mid-bit of a one
	rc5Start1
	rc5Mid0
	rc5Start0
	rc5Error
)

// Rc5Decoder consumes the same edge stream as the NEC decoder. The two
// run side by side on the shared input pin; whichever recognizes the
// frame wins.
type Rc5Decoder struct {
	state      rc5State
	bits       uint16
	n          int
	lastT      uint64
	lastToggle uint8
	haveLast   bool
}

func rc5Units(dur uint64) int {
	switch {
	case dur > rc5Half/2 && dur < rc5Half*3/2:
		return 1
	case dur >= rc5Half*3/2 && dur < rc5Half*5/2:
		return 2
	default:
		return 0
	}
}

// Edge feeds one transition, level being the line level after it.
func (d *Rc5Decoder) Edge(level bool, t uint64) (Message, bool) {
	dur := t - d.lastT
	d.lastT = t

	if d.state == rc5Idle || d.state == rc5Error {
		if !level {
			// First carrier burst: mid-bit of the implied start one.
			d.state = rc5Mid1
			d.bits = 1
			d.n = 1
		}
		return Message{}, false
	}

	u := rc5Units(dur)
	if u == 0 {
		d.state = rc5Idle
		return Message{}, false
	}

	switch d.state {
	case rc5Mid1:
		if u == 1 {
			d.state = rc5Start1
		} else {
			d.emit(0)
			d.state = rc5Mid0
		}
	case rc5Start1:
		if u == 1 {
			d.emit(1)
			d.state = rc5Mid1
		} else {
			d.state = rc5Error
			return Message{}, false
		}
	case rc5Mid0:
		if u == 1 {
			d.state = rc5Start0
		} else {
			d.emit(1)
			d.state = rc5Mid1
		}
	case rc5Start0:
		if u == 1 {
			d.emit(0)
			d.state = rc5Mid0
		} else {
			d.state = rc5Error
			return Message{}, false
		}
	}

	if d.n == 14 && (d.state == rc5Mid1 || d.state == rc5Mid0) {
		return d.finish()
	}
	return Message{}, false
}

// Reset returns the decoder to idle. Call it after a bit period of
// silence so an aborted frame cannot swallow the next frame's leading
// edge.
func (d *Rc5Decoder) Reset() {
	d.state = rc5Idle
	d.n = 0
}

func (d *Rc5Decoder) emit(b uint16) {
	d.bits = d.bits<<1 | b
	d.n++
}

func (d *Rc5Decoder) finish() (Message, bool) {
	bits := d.bits
	d.state = rc5Idle
	d.n = 0

	toggle := uint8(bits>>11) & 1
	addr := uint8(bits>>6) & 0x1F
	cmd := uint8(bits) & 0x3F

	repeat := d.haveLast && toggle == d.lastToggle
	d.lastToggle, d.haveLast = toggle, true
	return Message{Addr: addr, Cmd: cmd, Repeat: repeat}, true
}
