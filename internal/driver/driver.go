// Package driver holds the output sinks that take the gamma-corrected
// 9-pixel frame to somewhere visible: LED hardware over SPI, a terminal,
// or a websocket preview.
package driver

import "github.com/escbadge/minibadge/internal/matrix"

// Driver abstracts the LED transport. Write must not be re-entered
// before the previous call completes; the orchestrator is the only
// caller and ticks strictly sequentially.
type Driver interface {
	Write(f *matrix.Frame) error
	Close() error
}
