package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/escbadge/minibadge/internal/matrix"
)

// Term paints the matrix as a 3x3 block grid with ANSI truecolor
// escapes, redrawing in place.
type Term struct {
	w     io.Writer
	drawn bool
}

func NewTerm(w io.Writer) *Term { return &Term{w: w} }

func (t *Term) Write(f *matrix.Frame) error {
	var sb strings.Builder
	if t.drawn {
		sb.WriteString(fmt.Sprintf("\x1b[%dA", matrix.Height))
	}
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			p := f.GetPixel(x, y)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm██", p.R, p.G, p.B)
		}
		sb.WriteString("\x1b[0m\n")
	}
	t.drawn = true
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *Term) Close() error {
	_, err := io.WriteString(t.w, "\x1b[0m")
	return err
}
