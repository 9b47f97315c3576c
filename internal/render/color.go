// Package render implements the badge's compositing pipeline: palettes
// pick a base color over time, effects pick the active 9-bit mask, and
// fragment shaders transform pixels, some of them through a persistent
// per-pixel filter memory.
package render

import (
	"math"

	"github.com/escbadge/minibadge/internal/matrix"
)

// hsl2rgb converts hue/saturation/lightness, all in 0..1, to an 8-bit
// pixel. Hue must already be wrapped into [0, 1).
func hsl2rgb(h, s, l float64) matrix.Pixel {
	h = h * 360.0
	c := (1.0 - math.Abs(2.0*l-1.0)) * s
	x := c * (1.0 - math.Abs(math.Mod(h/60.0, 2.0)-1.0))
	m := l - c/2.0

	var r, g, b float64
	switch {
	case h <= 60.0:
		r, g, b = c, x, 0
	case h <= 120.0:
		r, g, b = x, c, 0
	case h <= 180.0:
		r, g, b = 0, c, x
	case h <= 240.0:
		r, g, b = 0, x, c
	case h <= 300.0:
		r, g, b = x, 0, c
	case h <= 360.0:
		r, g, b = c, 0, x
	}

	return matrix.Pixel{
		R: uint8(math.Round((r + m) * 255.0)),
		G: uint8(math.Round((g + m) * 255.0)),
		B: uint8(math.Round((b + m) * 255.0)),
	}
}
