package orchestrator_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/driver"
	"github.com/escbadge/minibadge/internal/ir"
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/orchestrator"
	"github.com/escbadge/minibadge/internal/render"
	"github.com/escbadge/minibadge/internal/scene"
)

type fixture struct {
	bus *bus.Bus
	drv *driver.Capture
	orc *orchestrator.Orchestrator
}

func newFixture() *fixture {
	b := bus.New(zerolog.Nop())
	mgr := render.NewManager(matrix.New(), 1)
	drv := &driver.Capture{}
	return &fixture{
		bus: b,
		drv: drv,
		orc: orchestrator.New(b, mgr, scene.New(), drv, zerolog.Nop()),
	}
}

func TestBootSplashThenNormal(t *testing.T) {
	f := newFixture()

	assert.Equal(t, bus.ModeSpecialTimeout, f.orc.Mode().Kind)
	f.orc.Step(0.1)
	assert.Equal(t, bus.ModeSpecialTimeout, f.orc.Mode().Kind)
	assert.Equal(t, 1, f.drv.Frames)

	f.orc.Step(0.6)
	assert.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)
	assert.Equal(t, 2, f.drv.Frames)
}

func TestShortPressCyclesScenes(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0) // boot splash over
	require.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)

	n := len(scene.New().Scenes)
	for i := 1; i <= n; i++ {
		f.bus.Publish(bus.ShortPress{})
		f.orc.Step(1.0 + float64(i))
		assert.Equal(t, i%n, f.orc.SceneIndex())
	}
}

func TestShortPressCancelsOverride(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	cmd := render.NewCommand()
	f.bus.Publish(bus.SetMode{Mode: bus.Special(cmd)})
	f.orc.Step(2.0)
	require.Equal(t, bus.ModeSpecial, f.orc.Mode().Kind)

	// Cancelling an override does not advance the scene cycle.
	f.bus.Publish(bus.ShortPress{})
	f.orc.Step(3.0)
	assert.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)
	assert.Equal(t, 0, f.orc.SceneIndex())
}

func TestBrightnessCycleIsOrderFour(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	want := []orchestrator.OutputPower{
		orchestrator.PowerMedium,
		orchestrator.PowerLow,
		orchestrator.PowerNightMode,
		orchestrator.PowerHigh,
	}
	now := 2.0
	for _, p := range want {
		f.bus.Publish(bus.LongPress{})
		f.orc.Step(now)
		assert.Equal(t, p, f.orc.Power())

		// Each adjustment flashes the tier indicator for a second.
		require.Equal(t, bus.ModeSpecialTimeout, f.orc.Mode().Kind)
		assert.InDelta(t, now+1.0, f.orc.Mode().Deadline, 1e-9)
		now += 2.0
		f.orc.Step(now) // indicator expired
		require.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)
		now += 1.0
	}
}

func TestBrightnessUpAndDownAreInverse(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	f.bus.Publish(bus.BrightnessUp{})
	f.orc.Step(2.0)
	assert.Equal(t, orchestrator.PowerNightMode, f.orc.Power())

	f.bus.Publish(bus.BrightnessDown{})
	f.orc.Step(3.0)
	assert.Equal(t, orchestrator.PowerHigh, f.orc.Power())
}

func TestPowerTierScalesOutput(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	var frame matrix.Frame
	frame.SetPixel(0, 0, matrix.Pixel{R: 255})
	f.bus.Publish(bus.SetMode{Mode: bus.RawFramebuffer(frame)})
	f.orc.Step(2.0)
	full := f.drv.Last.GetPixel(0, 0).R
	require.Equal(t, uint8(255), full)

	// Back to normal, drop a tier, then show the same raw frame again:
	// the pre-gamma gain dims the output.
	f.bus.Publish(bus.ShortPress{})
	f.orc.Step(3.0)
	f.bus.Publish(bus.LongPress{})
	f.orc.Step(4.0)
	require.Equal(t, orchestrator.PowerMedium, f.orc.Power())

	f.bus.Publish(bus.SetMode{Mode: bus.RawFramebuffer(frame)})
	f.orc.Step(5.0)
	dimmed := f.drv.Last.GetPixel(0, 0).R
	assert.Greater(t, dimmed, uint8(0))
	assert.Less(t, dimmed, full)
}

func TestRawFramebufferIsStickyAndUnthrottledByButtons(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	var frame matrix.Frame
	frame.SetPixel(1, 1, matrix.Pixel{G: 255})
	f.bus.Publish(bus.SetMode{Mode: bus.RawFramebuffer(frame)})
	f.orc.Step(2.0)
	require.Equal(t, bus.ModeRawFramebuffer, f.orc.Mode().Kind)
	assert.Equal(t, uint8(255), f.drv.Last.GetPixel(1, 1).G)

	// No timeout: the buffer stays up indefinitely.
	f.orc.Step(500.0)
	assert.Equal(t, bus.ModeRawFramebuffer, f.orc.Mode().Kind)
	assert.Equal(t, uint8(255), f.drv.Last.GetPixel(1, 1).G)

	// Brightness changes are dropped so the indicator cannot clobber the
	// externally driven buffer.
	f.bus.Publish(bus.LongPress{})
	f.orc.Step(501.0)
	assert.Equal(t, bus.ModeRawFramebuffer, f.orc.Mode().Kind)
	assert.Equal(t, orchestrator.PowerHigh, f.orc.Power())

	// The next-pattern action is the way out.
	f.bus.Publish(bus.ShortPress{})
	f.orc.Step(502.0)
	assert.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)
}

func TestMidiPixelsAccumulate(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	f.bus.Publish(bus.MidiSetPixel{X: 0, Y: 0, Channel: 0, Value: 100})
	f.orc.Step(2.0)
	f.bus.Publish(bus.MidiSetPixel{X: 0, Y: 0, Channel: 2, Value: 50})
	f.orc.Step(3.0)
	f.bus.Publish(bus.MidiSetPixel{X: 2, Y: 1, Channel: 1, Value: 9})
	f.orc.Step(4.0)

	require.Equal(t, bus.ModeRawFramebuffer, f.orc.Mode().Kind)
	got := f.orc.Mode().Frame
	assert.Equal(t, matrix.Pixel{R: 100, B: 50}, got.GetPixel(0, 0))
	assert.Equal(t, matrix.Pixel{G: 9}, got.GetPixel(2, 1))
}

func TestThermalThrottleScalesAfterGamma(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	var frame matrix.Frame
	frame.SetPixel(0, 0, matrix.Pixel{R: 255})
	f.bus.Publish(bus.SetMode{Mode: bus.RawFramebuffer(frame)})
	f.orc.Step(2.0)
	require.Equal(t, uint8(255), f.drv.Last.GetPixel(0, 0).R)

	f.bus.Publish(bus.ThermalMultiplier{Gain: 0.5})
	f.orc.Step(3.0)
	assert.Equal(t, uint8(127), f.drv.Last.GetPixel(0, 0).R)
}

func TestIRNextPattern(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	f.bus.Publish(bus.IRReceived{Addr: 0x00, Cmd: 0x40})
	f.orc.Step(2.0)
	assert.Equal(t, 1, f.orc.SceneIndex())
}

func TestIRIgnoredWhileTransmitting(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	f.bus.Publish(bus.SendNec{Addr: 0x42, Cmd: 0x23})
	f.orc.Step(2.0)

	// Our own reflection must not advance the scene.
	f.bus.Publish(bus.IRReceived{Addr: 0x00, Cmd: 0x40})
	f.orc.Step(3.0)
	assert.Equal(t, 0, f.orc.SceneIndex())

	f.bus.Publish(bus.NecSent{})
	f.orc.Step(4.0)
	f.bus.Publish(bus.IRReceived{Addr: 0x00, Cmd: 0x40})
	f.orc.Step(5.0)
	assert.Equal(t, 1, f.orc.SceneIndex())
}

func TestIRHelloResetsClock(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	// Resynchronize at now=10, then start a 0.5s override: it must time
	// out on the shifted clock.
	addr, cmd := ir.Hello()
	f.bus.Publish(bus.IRReceived{Addr: addr, Cmd: cmd})
	f.orc.Step(10.0)

	c := render.NewCommand()
	f.bus.Publish(bus.SetMode{Mode: bus.SpecialTimeout(c, 0.5)})
	f.orc.Step(10.2)
	require.Equal(t, bus.ModeSpecialTimeout, f.orc.Mode().Kind)
	f.orc.Step(10.4)
	assert.Equal(t, bus.ModeSpecialTimeout, f.orc.Mode().Kind)
	f.orc.Step(10.7)
	assert.Equal(t, bus.ModeNormal, f.orc.Mode().Kind)
}

func TestIRHidKeyForwarded(t *testing.T) {
	f := newFixture()
	tap := f.bus.Subscribe("tap")
	f.orc.Step(1.0)

	f.bus.Publish(bus.IRReceived{Addr: 0x00, Cmd: 0x46})
	f.orc.Step(2.0)

	var keys []bus.HidKey
	for {
		c, ok := tap.TryRecv()
		if !ok {
			break
		}
		if k, isKey := c.(bus.HidKey); isKey {
			keys = append(keys, k)
		}
	}
	require.Len(t, keys, 1)
	assert.Equal(t, uint8(0x4F), keys[0].Key)
}

func TestIRBootAnimationOverride(t *testing.T) {
	f := newFixture()
	f.orc.Step(1.0)

	f.bus.Publish(bus.IRReceived{Addr: 0x00, Cmd: 0x43})
	f.orc.Step(2.0)
	assert.Equal(t, bus.ModeSpecial, f.orc.Mode().Kind)

	// Untimed override: it stays until cancelled.
	f.orc.Step(60.0)
	assert.Equal(t, bus.ModeSpecial, f.orc.Mode().Kind)
}

func TestFramebufferClearedBetweenTicks(t *testing.T) {
	// Scene 0 only lights the glider cells; anything a previous tick drew
	// elsewhere must not persist.
	f := newFixture()
	f.orc.Step(1.0)

	var frame matrix.Frame
	frame.SetPixel(2, 0, matrix.Pixel{R: 255, G: 255, B: 255})
	f.bus.Publish(bus.SetMode{Mode: bus.RawFramebuffer(frame)})
	f.orc.Step(2.0)
	require.Equal(t, uint8(255), f.drv.Last.GetPixel(2, 0).R)

	f.bus.Publish(bus.SetMode{Mode: bus.Normal()})
	f.orc.Step(3.0)
	assert.Equal(t, matrix.Pixel{}, f.drv.Last.GetPixel(2, 0))
}
