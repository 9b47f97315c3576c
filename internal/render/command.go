package render

import (
	"fmt"

	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/pattern"
)

// MaxShaders bounds each of the two shader lists on a command.
const MaxShaders = 8

// Command is one visual layer: an effect choosing the active cells, a
// palette choosing the base color, two ordered shader lists and a time
// offset added to the scene clock.
type Command struct {
	Effect         Effect
	Color          Palette
	PatternShaders []Shader
	ScreenShaders  []Shader
	TimeOffset     float64
}

// NewCommand returns the default layer: every cell lit in solid white,
// no shaders, zero offset.
func NewCommand() Command {
	return Command{
		Effect: Simple(pattern.AllOn),
		Color:  Solid(matrix.Pixel{R: 255, G: 255, B: 255}),
	}
}

// Shaders bundles a shader list, panicking if the per-command bound is
// exceeded. Scene construction runs once at startup, so a violation is
// fatal there rather than a runtime condition.
func Shaders(ss ...Shader) []Shader {
	if len(ss) > MaxShaders {
		panic(fmt.Sprintf("render: at most %d shaders per list, got %d", MaxShaders, len(ss)))
	}
	return ss
}
