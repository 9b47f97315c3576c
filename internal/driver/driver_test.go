package driver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escbadge/minibadge/internal/driver"
	"github.com/escbadge/minibadge/internal/matrix"
)

func TestCaptureRecordsLastFrame(t *testing.T) {
	c := &driver.Capture{}
	var f matrix.Frame
	f.SetPixel(1, 1, matrix.Pixel{R: 1})
	require.NoError(t, c.Write(&f))

	f.SetPixel(1, 1, matrix.Pixel{R: 2})
	require.NoError(t, c.Write(&f))

	assert.Equal(t, 2, c.Frames)
	assert.Equal(t, matrix.Pixel{R: 2}, c.Last.GetPixel(1, 1))
}

func TestTermDrawsGridAndRedrawsInPlace(t *testing.T) {
	var sb strings.Builder
	d := driver.NewTerm(&sb)

	var f matrix.Frame
	f.SetPixel(0, 0, matrix.Pixel{R: 255})
	require.NoError(t, d.Write(&f))

	out := sb.String()
	assert.Equal(t, matrix.Height, strings.Count(out, "\n"))
	assert.Contains(t, out, "38;2;255;0;0")
	assert.NotContains(t, out, "\x1b[3A", "first frame must not move the cursor")

	sb.Reset()
	require.NoError(t, d.Write(&f))
	assert.Contains(t, sb.String(), "\x1b[3A")
}
