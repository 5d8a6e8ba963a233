package core

// Key code definitions
type KeyCode uint16

const (
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_LEFT    KeyCode = 0x25
	KEY_UP      KeyCode = 0x26
	KEY_RIGHT   KeyCode = 0x27
	KEY_DOWN    KeyCode = 0x28
	KEY_A       KeyCode = 0x41
	KEY_D       KeyCode = 0x44
	KEY_E       KeyCode = 0x45
	KEY_Q       KeyCode = 0x51
	KEY_R       KeyCode = 0x52
	KEY_S       KeyCode = 0x53
	KEY_W       KeyCode = 0x57
	KEY_UNKNOWN KeyCode = 0xFFFF
)

// Input tracks which keys are currently held down.
type Input struct {
	down map[KeyCode]bool
}

func NewInput() *Input {
	return &Input{down: make(map[KeyCode]bool)}
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	in.down[key] = pressed
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	return in.down[key]
}

func (in *Input) Reset() {
	in.down = make(map[KeyCode]bool)
}
