package render

import (
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/pattern"
)

// Manager composites an ordered list of commands into the matrix's raw
// framebuffer. It owns the persistent shader state; nothing else may
// mutate the framebuffer while a scene is being rendered.
type Manager struct {
	Matrix *matrix.Matrix
	State  *State
}

// NewManager wires a manager to its framebuffer and seeds the shader
// state.
func NewManager(m *matrix.Matrix, seed int64) *Manager {
	return &Manager{Matrix: m, State: NewState(seed)}
}

// Render composites the scene at time t, in command order. It never
// fails; all inputs were bounds-checked at construction.
func (r *Manager) Render(scene []Command, t float64) {
	for i := range scene {
		r.renderOne(&scene[i], t)
	}
}

// renderOne draws a single layer. Pattern shaders run only on cells the
// mask activates; screen shaders run read-modify-write over every cell,
// observing whatever earlier layers already wrote this tick. That
// bleed-through is the compositing model, not an accident.
func (r *Manager) renderOne(cmd *Command, t float64) {
	t += cmd.TimeOffset
	base := cmd.Color.At(t)
	mask := cmd.Effect.ActiveMask(t, r.State)

	for i, cell := range pattern.CellForBit {
		x, y := cell[0], cell[1]

		if mask.Set(i) {
			c := base
			for _, sh := range cmd.PatternShaders {
				c = sh.Apply(t, c, x, y, r.State)
			}
			r.Matrix.SetPixel(x, y, c)
		}

		for _, sh := range cmd.ScreenShaders {
			c := r.Matrix.GetPixel(x, y)
			c = sh.Apply(t, c, x, y, r.State)
			r.Matrix.SetPixel(x, y, c)
		}
	}
}
