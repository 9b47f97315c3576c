// Package bus carries the cross-task command vocabulary and the
// publish-subscribe channel that distributes it. Every task sees every
// published command and filters for the kinds it cares about.
package bus

import (
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/render"
)

// Command is the closed union of every event on the bus.
type Command interface{ isCommand() }

// ThermalMultiplier updates the post-gamma throttle gain.
type ThermalMultiplier struct{ Gain float64 }

// IRReceived is a decoded remote-control message.
type IRReceived struct {
	Addr, Cmd uint8
	Repeat    bool
}

// ShortPress and LongPress come from the button state machine.
type ShortPress struct{}
type LongPress struct{}

// MidiSetPixel writes one channel of one pixel into the externally
// accumulated raw framebuffer.
type MidiSetPixel struct {
	X, Y, Channel int
	Value         uint8
}

// SetMode unconditionally overrides the working mode.
type SetMode struct{ Mode Mode }

// SendNec asks the blaster to transmit, NecSent reports completion.
type SendNec struct {
	Addr, Cmd uint8
	Repeat    bool
}
type NecSent struct{}

// BrightnessUp / BrightnessDown cycle the output power tier.
type BrightnessUp struct{}
type BrightnessDown struct{}

// ResetTime resynchronizes the render clock, e.g. on a peer's hello code.
type ResetTime struct{}

// Activity flags generic host communication for the status indicator.
type Activity struct{}

// HidKey asks the HID task to emit a keystroke.
type HidKey struct{ Key uint8 }

// Failure is the only cross-task error path, consumed by the status
// indicator.
type Failure struct{ Err error }

// None is a decoded no-op.
type None struct{}

func (ThermalMultiplier) isCommand() {}
func (IRReceived) isCommand()        {}
func (ShortPress) isCommand()        {}
func (LongPress) isCommand()         {}
func (MidiSetPixel) isCommand()      {}
func (SetMode) isCommand()           {}
func (SendNec) isCommand()           {}
func (NecSent) isCommand()           {}
func (BrightnessUp) isCommand()      {}
func (BrightnessDown) isCommand()    {}
func (ResetTime) isCommand()         {}
func (Activity) isCommand()          {}
func (HidKey) isCommand()            {}
func (Failure) isCommand()           {}
func (None) isCommand()              {}

// ModeKind tags the working-mode variants.
type ModeKind uint8

const (
	ModeNormal ModeKind = iota
	ModeSpecial
	ModeSpecialTimeout
	ModeRawFramebuffer
)

// Mode is the orchestrator's working mode. Special and SpecialTimeout
// override the scene catalog with a single render command; RawFramebuffer
// displays an externally driven buffer verbatim.
type Mode struct {
	Kind     ModeKind
	Command  render.Command
	Deadline float64 // SpecialTimeout, seconds on the render clock
	Frame    matrix.Frame
}

func Normal() Mode { return Mode{Kind: ModeNormal} }

func Special(cmd render.Command) Mode { return Mode{Kind: ModeSpecial, Command: cmd} }

func SpecialTimeout(cmd render.Command, deadline float64) Mode {
	return Mode{Kind: ModeSpecialTimeout, Command: cmd, Deadline: deadline}
}

func RawFramebuffer(f matrix.Frame) Mode {
	return Mode{Kind: ModeRawFramebuffer, Frame: f}
}
