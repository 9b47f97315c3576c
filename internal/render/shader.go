package render

import (
	"math"
	"math/rand"

	"github.com/escbadge/minibadge/internal/matrix"
)

// State is the mutable memory shared by every shader and effect for the
// whole process lifetime. It is owned by the Manager, mutated on every
// render call and never reset.
type State struct {
	// FrameCounter advances once per AnimationRandom evaluation, not per
	// tick: two random effects in one scene advance it twice per tick.
	FrameCounter uint32
	// LowPass is the per-pixel filter memory behind ShaderLowPass and
	// ShaderLowPassPeak. Stored quantized, like the framebuffer.
	LowPass matrix.Frame

	rng *rand.Rand
}

// NewState seeds the process-lifetime RNG. Seeded exactly once at
// startup.
func NewState(seed int64) *State {
	return &State{rng: rand.New(rand.NewSource(seed))}
}

// ShaderKind tags the closed set of fragment shaders.
type ShaderKind uint8

const (
	ShaderBreathing ShaderKind = iota
	ShaderBlinking
	ShaderLowPass
	ShaderLowPassPeak
	ShaderRainbow2D
)

// Shader is a per-pixel color transform. The low-pass variants read and
// write the persistent filter cell at their pixel position.
type Shader struct {
	Kind  ShaderKind
	Speed float64 // ShaderBreathing, ShaderBlinking, ShaderRainbow2D
	Tau   float64 // ShaderLowPass, ShaderLowPassPeak; a call count, not seconds
}

// Breathing multiplies the color by 0.5 + 0.5*sin(2*pi*t*speed).
func Breathing(speed float64) Shader { return Shader{Kind: ShaderBreathing, Speed: speed} }

// Blinking passes the color through for the first half of each 1/speed
// second cycle and blacks out the second half.
func Blinking(speed float64) Shader { return Shader{Kind: ShaderBlinking, Speed: speed} }

// LowPass is a per-channel IIR filter, state += (in-state)/tau per call.
func LowPass(tau float64) Shader { return Shader{Kind: ShaderLowPass, Tau: tau} }

// LowPassWithPeak is LowPass with instant attack: the output is the
// per-channel max of the filtered value and the raw input.
func LowPassWithPeak(tau float64) Shader { return Shader{Kind: ShaderLowPassPeak, Tau: tau} }

// Rainbow2D ignores the incoming color and paints a hue gradient moving
// across the grid.
func Rainbow2D(speed float64) Shader { return Shader{Kind: ShaderRainbow2D, Speed: speed} }

// Apply evaluates the shader for the pixel at (x, y) at time t.
func (s Shader) Apply(t float64, c matrix.Pixel, x, y int, st *State) matrix.Pixel {
	switch s.Kind {
	case ShaderBreathing:
		l := 0.5 + 0.5*math.Sin(2.0*math.Pi*t*s.Speed)
		return matrix.Pixel{
			R: uint8(float64(c.R) * l),
			G: uint8(float64(c.G) * l),
			B: uint8(float64(c.B) * l),
		}

	case ShaderBlinking:
		if math.Mod(t*s.Speed, 1.0) < 0.5 {
			return c
		}
		return matrix.Pixel{}

	case ShaderLowPass:
		prev := st.LowPass.GetPixel(x, y)
		tau := float32(s.Tau)
		r := float32(prev.R) + (float32(c.R)-float32(prev.R))/tau
		g := float32(prev.G) + (float32(c.G)-float32(prev.G))/tau
		b := float32(prev.B) + (float32(c.B)-float32(prev.B))/tau
		out := matrix.Pixel{R: uint8(r), G: uint8(g), B: uint8(b)}
		st.LowPass.SetPixel(x, y, out)
		return out

	case ShaderLowPassPeak:
		prev := st.LowPass.GetPixel(x, y)
		tau := float32(s.Tau)
		r := max32(float32(prev.R)+(float32(c.R)-float32(prev.R))/tau, float32(c.R))
		g := max32(float32(prev.G)+(float32(c.G)-float32(prev.G))/tau, float32(c.G))
		b := max32(float32(prev.B)+(float32(c.B)-float32(prev.B))/tau, float32(c.B))
		out := matrix.Pixel{R: uint8(r), G: uint8(g), B: uint8(b)}
		st.LowPass.SetPixel(x, y, out)
		return out

	case ShaderRainbow2D:
		h := (float64(x)+float64(y))/16.0 + t*s.Speed
		return hsl2rgb(math.Mod(h, 1.0), 1.0, 0.5)
	}
	return c
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
