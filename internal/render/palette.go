package render

import (
	"fmt"
	"math"

	"github.com/escbadge/minibadge/internal/matrix"
)

// PaletteKind tags the closed set of color sources.
type PaletteKind uint8

const (
	PaletteSolid PaletteKind = iota
	PaletteRainbow
	PaletteCustom
)

// MaxPaletteColors bounds a custom palette.
const MaxPaletteColors = 16

// Palette is a pure function of time to color.
type Palette struct {
	Kind   PaletteKind
	Color  matrix.Pixel   // PaletteSolid
	Colors []matrix.Pixel // PaletteCustom
	Speed  float64        // PaletteRainbow, PaletteCustom
}

// Solid returns a time-invariant palette.
func Solid(c matrix.Pixel) Palette {
	return Palette{Kind: PaletteSolid, Color: c}
}

// Rainbow cycles the full hue wheel, speed in cycles per second.
func Rainbow(speed float64) Palette {
	return Palette{Kind: PaletteRainbow, Speed: speed}
}

// Custom steps through the given colors at speed entries per second.
// More than MaxPaletteColors is a catalog bug and panics at construction.
func Custom(speed float64, colors ...matrix.Pixel) Palette {
	if len(colors) == 0 || len(colors) > MaxPaletteColors {
		panic(fmt.Sprintf("render: custom palette must have 1..%d colors, got %d", MaxPaletteColors, len(colors)))
	}
	cs := make([]matrix.Pixel, len(colors))
	copy(cs, colors)
	return Palette{Kind: PaletteCustom, Colors: cs, Speed: speed}
}

// At evaluates the palette at time t (seconds).
func (p Palette) At(t float64) matrix.Pixel {
	switch p.Kind {
	case PaletteSolid:
		return p.Color
	case PaletteRainbow:
		return hsl2rgb(math.Mod(t*p.Speed, 1.0), 1.0, 0.5)
	case PaletteCustom:
		idx := int(math.Floor(t*p.Speed)) % len(p.Colors)
		return p.Colors[idx]
	}
	return matrix.Pixel{}
}
