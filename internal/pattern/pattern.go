// Package pattern holds the 9-bit LED masks and mask sequences that drive
// the 3x3 matrix, plus the named catalog the scenes are built from.
package pattern

import "fmt"

// Mask is a 9-bit bitfield selecting lit cells on the 3x3 grid.
//
// Bit i lights the cell at CellForBit[i]. The layout is column-major with
// Y growing downward from the top-left, so bit 0 is the bottom-left cell
// and bit 8 the top-right. Written in binary literals, the leftmost digit
// is bit 8.
type Mask uint16

// CellForBit maps each bit index 0..8 to its (x, y) cell. (0,0) is the
// top-left cell. The table is fixed by the badge hardware layout.
var CellForBit = [9][2]int{
	{0, 2}, // bit 0, first led
	{0, 1},
	{0, 0},
	{1, 2},
	{1, 1},
	{1, 0},
	{2, 2},
	{2, 1},
	{2, 0}, // bit 8, the last led
}

// Set reports whether bit i of the mask is set.
func (m Mask) Set(i int) bool { return m&(1<<uint(i)) != 0 }

// At reports whether the cell at (x, y) is lit. Out-of-range cells are
// never lit.
func (m Mask) At(x, y int) bool {
	if x < 0 || x >= 3 || y < 0 || y >= 3 {
		return false
	}
	return m.Set(x*3 + (2 - y))
}

// MaxAnimationFrames bounds a mask sequence.
const MaxAnimationFrames = 20

// Animation is an ordered, bounded sequence of masks addressed by a
// time-derived index.
type Animation struct {
	frames []Mask
}

// NewAnimation builds an animation from the given frames. Exceeding
// MaxAnimationFrames is a programming error in the catalog and panics at
// construction.
func NewAnimation(frames ...Mask) *Animation {
	if len(frames) == 0 || len(frames) > MaxAnimationFrames {
		panic(fmt.Sprintf("pattern: animation must have 1..%d frames, got %d", MaxAnimationFrames, len(frames)))
	}
	a := &Animation{frames: make([]Mask, len(frames))}
	copy(a.frames, frames)
	return a
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Frame returns frame i. The index must be in range; callers derive it
// modulo Len.
func (a *Animation) Frame(i int) Mask { return a.frames[i] }
