// Package matrix owns the 3x3 framebuffer and the brightness pipeline:
// a pre-gamma gain for the user-selected output power tier and a
// post-gamma gain for thermal throttling.
package matrix

// Fixed badge geometry.
const (
	Width  = 3
	Height = 3
	Size   = Width * Height
)

// Pixel is one LED's color, 8 bits per channel.
type Pixel struct {
	R, G, B uint8
}

// Frame is a raw 9-pixel buffer in row-major order, (0,0) top-left.
type Frame [Size]Pixel

// SetPixel writes a pixel. Out-of-range coordinates are silently dropped.
func (f *Frame) SetPixel(x, y int, p Pixel) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	f[y*Width+x] = p
}

// GetPixel reads a pixel. Out-of-range coordinates read as the zero pixel.
func (f *Frame) GetPixel(x, y int) Pixel {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Pixel{}
	}
	return f[y*Width+x]
}

// Matrix is the raw framebuffer plus the derived gamma-corrected buffer.
//
// gain is the output-power multiplier and is applied before the gamma
// lookup. rawGain is the thermal-throttle multiplier and is applied after
// it, so no brightness tier can undo a thermal clamp.
type Matrix struct {
	raw       Frame
	corrected Frame
	gain      float64
	rawGain   float64
}

// New returns a matrix with both gains at 1.0 and a dark framebuffer.
func New() *Matrix {
	return &Matrix{gain: 1.0, rawGain: 1.0}
}

// SetPixel writes into the raw framebuffer, silently dropping
// out-of-range coordinates.
func (m *Matrix) SetPixel(x, y int, p Pixel) { m.raw.SetPixel(x, y, p) }

// GetPixel reads the raw framebuffer, zero for out-of-range coordinates.
func (m *Matrix) GetPixel(x, y int) Pixel { return m.raw.GetPixel(x, y) }

// SetAll fills the raw framebuffer with one color.
func (m *Matrix) SetAll(p Pixel) {
	for i := range m.raw {
		m.raw[i] = p
	}
}

// Clear zeroes the raw framebuffer. The corrected buffer and any shader
// state are untouched.
func (m *Matrix) Clear() {
	m.raw = Frame{}
}

// SetFrame replaces the whole raw framebuffer.
func (m *Matrix) SetFrame(f Frame) { m.raw = f }

// SetGain sets the pre-gamma brightness-tier multiplier.
func (m *Matrix) SetGain(g float64) { m.gain = g }

// SetRawGain sets the post-gamma thermal multiplier.
func (m *Matrix) SetRawGain(g float64) { m.rawGain = g }

// GammaCorrected recomputes and returns the output buffer:
// rawGain * gamma[clamp(channel*gain, 0, 255)] per channel.
func (m *Matrix) GammaCorrected() *Frame {
	for i, p := range m.raw {
		m.corrected[i] = Pixel{
			R: m.correct(p.R),
			G: m.correct(p.G),
			B: m.correct(p.B),
		}
	}
	return &m.corrected
}

func (m *Matrix) correct(ch uint8) uint8 {
	v := float64(ch) * m.gain
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	out := m.rawGain * float64(gamma[uint8(v)])
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return uint8(out)
}
