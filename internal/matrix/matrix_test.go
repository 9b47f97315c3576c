package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escbadge/minibadge/internal/matrix"
)

func TestFrameOutOfRangeIsSilent(t *testing.T) {
	var f matrix.Frame
	f.SetPixel(-1, 0, matrix.Pixel{R: 255})
	f.SetPixel(3, 1, matrix.Pixel{R: 255})
	f.SetPixel(1, 3, matrix.Pixel{R: 255})
	assert.Equal(t, matrix.Frame{}, f)
	assert.Equal(t, matrix.Pixel{}, f.GetPixel(-1, 5))
}

func TestGammaEndpoints(t *testing.T) {
	m := matrix.New()
	m.SetAll(matrix.Pixel{R: 255, G: 255, B: 255})
	out := m.GammaCorrected()
	assert.Equal(t, matrix.Pixel{R: 255, G: 255, B: 255}, out[0])

	m.Clear()
	out = m.GammaCorrected()
	assert.Equal(t, matrix.Frame{}, *out)
}

func TestGammaIsMonotonic(t *testing.T) {
	m := matrix.New()
	prev := uint8(0)
	for v := 0; v < 256; v++ {
		m.SetPixel(0, 0, matrix.Pixel{R: uint8(v)})
		got := m.GammaCorrected()[0].R
		assert.GreaterOrEqual(t, got, prev, "gamma must not decrease at input %d", v)
		prev = got
	}
}

func TestGainAppliesBeforeGamma(t *testing.T) {
	// At gain 0.5 the curve is evaluated at the halved input, which for a
	// 2.2 curve is much darker than half the output.
	m := matrix.New()
	m.SetPixel(0, 0, matrix.Pixel{R: 255})
	full := m.GammaCorrected()[0].R

	m.SetGain(0.5)
	m.SetPixel(0, 0, matrix.Pixel{R: 255})
	half := m.GammaCorrected()[0].R

	assert.Equal(t, uint8(255), full)
	assert.Less(t, int(half), 128)
	assert.Greater(t, int(half), 0)
}

func TestGainZeroBlanksOutput(t *testing.T) {
	m := matrix.New()
	m.SetAll(matrix.Pixel{R: 200, G: 10, B: 90})
	m.SetGain(0)
	assert.Equal(t, matrix.Frame{}, *m.GammaCorrected())
}

func TestRawGainAppliesAfterGamma(t *testing.T) {
	// Thermal throttle scales the already-corrected value linearly.
	m := matrix.New()
	m.SetPixel(0, 0, matrix.Pixel{R: 255})
	m.SetRawGain(0.5)
	got := m.GammaCorrected()[0].R
	assert.Equal(t, uint8(127), got)
}

func TestClearKeepsGains(t *testing.T) {
	m := matrix.New()
	m.SetGain(0.25)
	m.SetRawGain(0.5)
	m.SetAll(matrix.Pixel{R: 255})
	m.Clear()
	m.SetPixel(0, 0, matrix.Pixel{R: 255})
	withBoth := m.GammaCorrected()[0].R

	fresh := matrix.New()
	fresh.SetPixel(0, 0, matrix.Pixel{R: 255})
	unscaled := fresh.GammaCorrected()[0].R

	assert.Less(t, withBoth, unscaled)
}
