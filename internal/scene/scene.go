// Package scene builds the immutable catalog of render scenes. The
// catalog is constructed once at startup, before any task spawns, and is
// shared read-only from then on.
package scene

import (
	"fmt"

	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/pattern"
	"github.com/escbadge/minibadge/internal/render"
)

// Bounds on the catalog. Violations panic during construction; they can
// only come from editing this file.
const (
	MaxScenes        = 20
	MaxSceneCommands = 8
)

// Scene is an ordered list of layers composited each tick.
type Scene []render.Command

// Catalog is everything the orchestrator can display.
type Catalog struct {
	// Scenes cycled through by the next-pattern action.
	Scenes []Scene
	// Boot is the splash command shown for the first half second.
	Boot render.Command
	// powerIndicator holds one command per output power tier, brightest
	// first.
	powerIndicator [4]render.Command
}

// PowerIndicator returns the brightness-tier overlay for tier 0 (high)
// through 3 (night mode).
func (c *Catalog) PowerIndicator(tier int) render.Command {
	if tier < 0 || tier > 3 {
		tier = 3
	}
	return c.powerIndicator[tier]
}

var (
	red   = matrix.Pixel{R: 255}
	green = matrix.Pixel{G: 255}
	blue  = matrix.Pixel{B: 255}
	white = matrix.Pixel{R: 255, G: 255, B: 255}
	black = matrix.Pixel{}
)

// New builds the catalog.
func New() *Catalog {
	cat := &Catalog{
		Boot: bootCommand(),
		powerIndicator: [4]render.Command{
			indicator(pattern.Power100),
			indicator(pattern.Power75),
			indicator(pattern.Power50),
			indicator(pattern.Power25),
		},
	}

	solidGlider := func(c matrix.Pixel) Scene {
		cmd := render.NewCommand()
		cmd.Effect = render.Simple(pattern.Glider)
		cmd.Color = render.Solid(c)
		return Scene{cmd}
	}
	solidAll := func(c matrix.Pixel) Scene {
		cmd := render.NewCommand()
		cmd.Color = render.Solid(c)
		return Scene{cmd}
	}

	breathingGlider := render.NewCommand()
	breathingGlider.Effect = render.Simple(pattern.Glider)
	breathingGlider.Color = render.Solid(blue)
	breathingGlider.PatternShaders = render.Shaders(render.Breathing(0.7))

	glitterBase := render.NewCommand()
	glitterBase.Effect = render.Simple(pattern.Glider)
	glitterBase.Color = render.Solid(blue)
	glitter := render.NewCommand()
	glitter.Effect = render.AnimationRandom(pattern.EverythingOnce, 300)
	glitter.Color = render.Rainbow(0.25)
	glitter.ScreenShaders = render.Shaders(render.LowPassWithPeak(10000.0))

	italy := func(m pattern.Mask, c matrix.Pixel) render.Command {
		cmd := render.NewCommand()
		cmd.Effect = render.Simple(m)
		cmd.Color = render.Solid(c)
		return cmd
	}

	rainbowGlider := render.NewCommand()
	rainbowGlider.Effect = render.Simple(pattern.Glider)
	rainbowGlider.PatternShaders = render.Shaders(render.Rainbow2D(0.5))

	doubleRainbowBase := render.NewCommand()
	doubleRainbowBase.Color = render.Rainbow(0.25)
	doubleRainbowTop := render.NewCommand()
	doubleRainbowTop.Effect = render.Simple(pattern.Glider)
	doubleRainbowTop.Color = render.Rainbow(0.25)
	doubleRainbowTop.TimeOffset = 2.0

	rainbow2D := render.NewCommand()
	rainbow2D.ScreenShaders = render.Shaders(render.Rainbow2D(0.5))

	police := render.NewCommand()
	police.Color = render.Custom(15.0,
		black, red, black, red, black,
		black, black, black,
		blue, black, blue, black,
		black, black, black,
	)

	marquee := render.NewCommand()
	marquee.Effect = render.Text("ESC", 2.0)
	marquee.Color = render.Solid(white)

	cat.Scenes = []Scene{
		solidGlider(blue),
		solidGlider(green),
		solidGlider(red),
		{breathingGlider},
		{glitterBase, glitter},
		{
			italy(pattern.VerticalStripe1, green),
			italy(pattern.VerticalStripe2, white),
			italy(pattern.VerticalStripe3, red),
		},
		{rainbowGlider},
		{doubleRainbowBase, doubleRainbowTop},
		{rainbow2D},
		solidAll(red),
		solidAll(green),
		solidAll(blue),
		solidAll(white),
		{police},
		{marquee},
	}

	cat.check()
	return cat
}

func bootCommand() render.Command {
	// 10 frames in the 0.5s boot window.
	cmd := render.NewCommand()
	cmd.Effect = render.Animation(pattern.BootAnimation, 20.0)
	cmd.Color = render.Rainbow(0.25)
	return cmd
}

func indicator(m pattern.Mask) render.Command {
	cmd := render.NewCommand()
	cmd.Effect = render.Simple(m)
	cmd.Color = render.Solid(white)
	return cmd
}

func (c *Catalog) check() {
	if len(c.Scenes) == 0 || len(c.Scenes) > MaxScenes {
		panic(fmt.Sprintf("scene: catalog must have 1..%d scenes, got %d", MaxScenes, len(c.Scenes)))
	}
	for i, s := range c.Scenes {
		if len(s) == 0 || len(s) > MaxSceneCommands {
			panic(fmt.Sprintf("scene: scene %d must have 1..%d commands, got %d", i, MaxSceneCommands, len(s)))
		}
	}
}
