package driver

import "github.com/escbadge/minibadge/internal/matrix"

// Capture records frames for tests.
type Capture struct {
	Frames int
	Last   matrix.Frame
}

func (c *Capture) Write(f *matrix.Frame) error {
	c.Frames++
	c.Last = *f
	return nil
}

func (c *Capture) Close() error { return nil }
