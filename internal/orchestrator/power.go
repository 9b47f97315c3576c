package orchestrator

// OutputPower is the user-selected brightness tier, a cyclic group of
// order 4: four increases (or decreases) return to the start, and the
// two operations are mutual inverses.
type OutputPower uint8

const (
	PowerHigh OutputPower = iota
	PowerMedium
	PowerLow
	PowerNightMode
)

// Gain is the pre-gamma framebuffer multiplier for the tier.
func (p OutputPower) Gain() float64 {
	switch p {
	case PowerHigh:
		return 1.0
	case PowerMedium:
		return 0.7
	case PowerLow:
		return 0.5
	default:
		return 0.25
	}
}

// Increase steps one tier brighter, wrapping from High to NightMode.
func (p OutputPower) Increase() OutputPower { return (p + 3) % 4 }

// Decrease steps one tier dimmer, wrapping from NightMode to High.
func (p OutputPower) Decrease() OutputPower { return (p + 1) % 4 }

func (p OutputPower) String() string {
	switch p {
	case PowerHigh:
		return "high"
	case PowerMedium:
		return "medium"
	case PowerLow:
		return "low"
	default:
		return "night"
	}
}
