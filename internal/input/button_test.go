package input_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/input"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBounceIsIgnored(t *testing.T) {
	m := input.NewMachine()
	_, fired := m.Edge(true, t0)
	assert.False(t, fired)
	_, fired = m.Edge(false, t0.Add(40*time.Millisecond))
	assert.False(t, fired)
}

func TestShortPress(t *testing.T) {
	m := input.NewMachine()
	m.Edge(true, t0)
	cmd, fired := m.Edge(false, t0.Add(500*time.Millisecond))
	require.True(t, fired)
	assert.IsType(t, bus.ShortPress{}, cmd)
}

func TestLongPressFiresAtHoldDeadline(t *testing.T) {
	m := input.NewMachine()
	m.Edge(true, t0)

	dl, ok := m.Deadline()
	require.True(t, ok)
	assert.Equal(t, t0.Add(time.Second), dl)

	// Before the deadline nothing fires.
	_, fired := m.Expire(t0.Add(900 * time.Millisecond))
	assert.False(t, fired)

	cmd, fired := m.Expire(t0.Add(time.Second))
	require.True(t, fired)
	assert.IsType(t, bus.LongPress{}, cmd)

	// The release after a fired long press is silent.
	_, fired = m.Edge(false, t0.Add(1500*time.Millisecond))
	assert.False(t, fired)

	_, ok = m.Deadline()
	assert.False(t, ok)
}

func TestLateLongPressRecovery(t *testing.T) {
	// If the hold timer never ran, the release itself still yields the
	// long press instead of a short one.
	m := input.NewMachine()
	m.Edge(true, t0)
	cmd, fired := m.Edge(false, t0.Add(1500*time.Millisecond))
	require.True(t, fired)
	assert.IsType(t, bus.LongPress{}, cmd)
}

func TestRepeatedPressEdgesAreIdempotent(t *testing.T) {
	m := input.NewMachine()
	m.Edge(true, t0)
	m.Edge(true, t0.Add(300*time.Millisecond)) // glitch, must not restart the hold clock

	cmd, fired := m.Expire(t0.Add(time.Second))
	require.True(t, fired)
	assert.IsType(t, bus.LongPress{}, cmd)
}

func TestReleaseWithoutPress(t *testing.T) {
	m := input.NewMachine()
	_, fired := m.Edge(false, t0)
	assert.False(t, fired)
}

func TestPressSequence(t *testing.T) {
	m := input.NewMachine()

	// Short, then long, then short again.
	m.Edge(true, t0)
	cmd, fired := m.Edge(false, t0.Add(200*time.Millisecond))
	require.True(t, fired)
	assert.IsType(t, bus.ShortPress{}, cmd)

	at := t0.Add(time.Second)
	m.Edge(true, at)
	cmd, fired = m.Expire(at.Add(time.Second))
	require.True(t, fired)
	assert.IsType(t, bus.LongPress{}, cmd)
	m.Edge(false, at.Add(1100*time.Millisecond))

	at = at.Add(2 * time.Second)
	m.Edge(true, at)
	cmd, fired = m.Edge(false, at.Add(100*time.Millisecond))
	require.True(t, fired)
	assert.IsType(t, bus.ShortPress{}, cmd)
}
