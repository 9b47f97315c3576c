// Package orchestrator owns the working mode, the output power tier and
// the render clock, and drives the per-tick pipeline that turns bus
// events and the scene catalog into frames.
package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/driver"
	"github.com/escbadge/minibadge/internal/ir"
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/render"
	"github.com/escbadge/minibadge/internal/scene"
)

const bootSplash = 0.5 // seconds

// Orchestrator is the only task that touches the matrix and the shader
// state; everything else talks to it over the bus.
type Orchestrator struct {
	bus *bus.Bus
	sub *bus.Subscription
	mgr *render.Manager
	mtx *matrix.Matrix
	cat *scene.Catalog
	drv driver.Driver
	log zerolog.Logger

	mode         bus.Mode
	power        OutputPower
	sceneIdx     int
	timeOffset   float64
	transmitting bool
	start        time.Time
}

// New wires the orchestrator. The initial mode shows the boot splash for
// half a second.
func New(b *bus.Bus, mgr *render.Manager, cat *scene.Catalog, drv driver.Driver, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		bus:   b,
		sub:   b.Subscribe("orchestrator"),
		mgr:   mgr,
		mtx:   mgr.Matrix,
		cat:   cat,
		drv:   drv,
		log:   log,
		mode:  bus.SpecialTimeout(cat.Boot, bootSplash),
		power: PowerHigh,
		start: time.Now(),
	}
}

// Run ticks at the given rate until the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, tickHz int) {
	if tickHz <= 0 {
		tickHz = 100
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickHz))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.Step(time.Since(o.start).Seconds())
		}
	}
}

// Step runs one tick at wall time now (seconds since start). Exported so
// tests can drive the machine with a synthetic clock.
func (o *Orchestrator) Step(now float64) {
	t := now - o.timeOffset

	o.mtx.SetGain(o.power.Gain())

	if cmd, ok := o.sub.TryRecv(); ok {
		o.dispatch(cmd, now, t)
		// A time reset moves the render clock this same tick.
		t = now - o.timeOffset
	}

	if o.mode.Kind == bus.ModeSpecialTimeout && t >= o.mode.Deadline {
		o.mode = bus.Normal()
	}

	switch o.mode.Kind {
	case bus.ModeNormal:
		o.mgr.Render(o.cat.Scenes[o.sceneIdx], t)
	case bus.ModeSpecial, bus.ModeSpecialTimeout:
		o.mgr.Render([]render.Command{o.mode.Command}, t)
	case bus.ModeRawFramebuffer:
		o.mtx.SetFrame(o.mode.Frame)
	}

	if err := o.drv.Write(o.mtx.GammaCorrected()); err != nil {
		o.log.Warn().Err(err).Msg("frame write failed")
	}

	o.mtx.Clear()
}

// Mode exposes the current working mode for tests and diagnostics.
func (o *Orchestrator) Mode() bus.Mode { return o.mode }

// Power exposes the current output power tier.
func (o *Orchestrator) Power() OutputPower { return o.power }

// SceneIndex exposes the active normal-mode scene.
func (o *Orchestrator) SceneIndex() int { return o.sceneIdx }

func (o *Orchestrator) dispatch(cmd bus.Command, now, t float64) {
	switch c := cmd.(type) {
	case bus.ThermalMultiplier:
		o.log.Info().Float64("gain", c.Gain).Msg("thermal throttle")
		o.mtx.SetRawGain(c.Gain)

	case bus.ShortPress:
		o.nextPattern()

	case bus.LongPress:
		o.adjustBrightness(false, t)

	case bus.BrightnessUp:
		o.adjustBrightness(true, t)

	case bus.BrightnessDown:
		o.adjustBrightness(false, t)

	case bus.SetMode:
		o.mode = c.Mode

	case bus.MidiSetPixel:
		o.mergeMidiPixel(c)

	case bus.IRReceived:
		if o.transmitting {
			return
		}
		o.applyIntent(ir.Lookup(c.Addr, c.Cmd), now, t)

	case bus.SendNec:
		o.transmitting = true

	case bus.NecSent:
		o.transmitting = false

	case bus.ResetTime:
		o.timeOffset = now
	}
}

// nextPattern advances the scene cycle, or cancels whatever override is
// active and returns to normal rendering.
func (o *Orchestrator) nextPattern() {
	if o.mode.Kind == bus.ModeNormal {
		o.sceneIdx = (o.sceneIdx + 1) % len(o.cat.Scenes)
		return
	}
	o.mode = bus.Normal()
}

// adjustBrightness cycles the power tier and flashes the tier indicator.
// While an external raw framebuffer is on display the event is dropped
// so it cannot disturb the buffer.
func (o *Orchestrator) adjustBrightness(up bool, t float64) {
	if o.mode.Kind == bus.ModeRawFramebuffer {
		return
	}
	if up {
		o.power = o.power.Increase()
	} else {
		o.power = o.power.Decrease()
	}
	o.mode = bus.SpecialTimeout(o.cat.PowerIndicator(int(o.power)), t+1.0)
}

// mergeMidiPixel accumulates one channel write into the raw buffer and
// keeps (or makes) it the displayed mode. The buffer survives across
// events; only SetMode or a next-pattern action replaces it.
func (o *Orchestrator) mergeMidiPixel(c bus.MidiSetPixel) {
	frame := matrix.Frame{}
	if o.mode.Kind == bus.ModeRawFramebuffer {
		frame = o.mode.Frame
	}
	p := frame.GetPixel(c.X, c.Y)
	switch c.Channel {
	case 0:
		p.R = c.Value
	case 1:
		p.G = c.Value
	case 2:
		p.B = c.Value
	}
	frame.SetPixel(c.X, c.Y, p)
	o.mode = bus.RawFramebuffer(frame)
}

func (o *Orchestrator) applyIntent(a ir.Action, now, t float64) {
	switch a.Intent {
	case ir.IntentBrightnessDown:
		o.adjustBrightness(false, t)
	case ir.IntentBrightnessUp:
		o.adjustBrightness(true, t)
	case ir.IntentResetTime:
		o.timeOffset = now
	case ir.IntentNextPattern:
		o.nextPattern()
	case ir.IntentBootAnimation:
		o.mode = bus.Special(o.cat.Boot)
	case ir.IntentHidKey:
		o.bus.Publish(bus.HidKey{Key: a.Key})
	}
}
