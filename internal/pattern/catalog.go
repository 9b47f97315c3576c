package pattern

// Named masks used by the built-in scenes. Binary literals read with bit 8
// leftmost, see CellForBit.
const (
	Power100 Mask = 0b111111111
	Power75  Mask = 0b000111111
	Power50  Mask = 0b000000111
	Power25  Mask = 0b000000001

	Glider Mask = 0b010001111
	AllOn  Mask = 0b111111111

	VerticalStripe1 Mask = 0b100100100
	VerticalStripe2 Mask = 0b010010010
	VerticalStripe3 Mask = 0b001001001
)

// EverythingOnce walks a single lit cell across the whole matrix.
var EverythingOnce = NewAnimation(
	0b100000000,
	0b010000000,
	0b001000000,
	0b000100000,
	0b000010000,
	0b000001000,
	0b000000100,
	0b000000010,
	0b000000001,
)

// BootAnimation is the splash played right after power-up. The trailing
// blank frames give the sweep a beat of dark before normal rendering
// takes over.
var BootAnimation = NewAnimation(
	0b010000000,
	0b010010000,
	0b111111000,
	0b000111111,
	0b000000111,
	0b000000010,
	0b000000000,
	0b000000000,
	0b000000000,
	0b000000000,
)
