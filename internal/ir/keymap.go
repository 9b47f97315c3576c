package ir

// Intent is what a received remote code asks the orchestrator to do.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentBrightnessDown
	IntentBrightnessUp
	IntentResetTime
	IntentNextPattern
	IntentBootAnimation
	IntentHidKey
)

// Action pairs an intent with its HID usage code when relevant.
type Action struct {
	Intent Intent
	Key    uint8
}

type code struct{ addr, cmd uint8 }

// helloCode is what peer badges broadcast; receiving it resynchronizes
// the visual clock so nearby badges animate in step.
var helloCode = code{0x42, 0x23}

// keymap binds the stock 21-key NEC remote (address 0x00) plus the
// badge-to-badge hello code. PREV/NEXT double as a presentation clicker
// through the HID interface (keyboard usage IDs 0x50/0x4F).
var keymap = map[code]Action{
	{0x00, 0x07}: {Intent: IntentBrightnessDown}, // VOL-
	{0x00, 0x15}: {Intent: IntentBrightnessUp},   // VOL+
	{0x00, 0x40}: {Intent: IntentNextPattern},    // NEXT
	{0x00, 0x43}: {Intent: IntentBootAnimation},  // PLAY
	{0x00, 0x44}: {Intent: IntentHidKey, Key: 0x50}, // PREV -> left arrow
	{0x00, 0x46}: {Intent: IntentHidKey, Key: 0x4F}, // CH -> right arrow
	helloCode:    {Intent: IntentResetTime},
}

// Lookup maps a received (address, command) pair to an action. Unknown
// codes are a no-op.
func Lookup(addr, cmd uint8) Action {
	return keymap[code{addr, cmd}]
}

// Hello returns the address and command badges broadcast to greet peers.
func Hello() (addr, cmd uint8) { return helloCode.addr, helloCode.cmd }
