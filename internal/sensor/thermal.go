// Package sensor samples the badge temperature and publishes the
// thermal-throttle multiplier.
package sensor

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/bus"
)

// Multiplier maps a temperature to the post-gamma throttle gain:
// linear from 1.0 at 55°C down to the 0.1 floor at 65°C. The second
// return is whether the value is worth publishing; at gain 1.0 there is
// nothing to throttle. There is deliberately no recovery event when the
// badge cools down again.
func Multiplier(tempC float64) (float64, bool) {
	m := (65.0 - tempC) / 10.0
	if m > 1.0 {
		m = 1.0
	}
	if m < 0.1 {
		m = 0.1
	}
	return m, m < 1.0
}

// Thermal samples a sysfs-style thermal zone (millidegrees Celsius) once
// per period.
type Thermal struct {
	Path   string
	Period time.Duration
	Bus    *bus.Bus
	Log    zerolog.Logger
}

// Run loops forever until the context is cancelled. A failed read skips
// the sample; the previous multiplier stays in force.
func (t *Thermal) Run(ctx context.Context) {
	period := t.Period
	if period <= 0 {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			temp, err := readMilli(t.Path)
			if err != nil {
				t.Log.Debug().Err(err).Str("path", t.Path).Msg("temperature read failed")
				continue
			}
			if m, ok := Multiplier(temp); ok {
				t.Bus.Publish(bus.ThermalMultiplier{Gain: m})
			}
		}
	}
}

func readMilli(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, err
	}
	return float64(v) / 1000.0, nil
}
