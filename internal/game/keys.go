package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/stranded/internal/input"
)

// holdWindow is how long a direction stays held after its last key event.
// Terminals report presses and auto-repeats but never releases.
const holdWindow = 180 * time.Millisecond

type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
	dirLeft
	dirRight
)

// keyAction is what a single key press asks the host to do.
type keyAction struct {
	dir   direction
	cmd   input.Command
	quit  bool
	pause bool
}

// translateKey maps a key to an action. Unknown keys map to the zero action.
func translateKey(key tcell.Key, r rune) keyAction {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyAction{quit: true}
	case tcell.KeyUp:
		return keyAction{dir: dirUp}
	case tcell.KeyDown:
		return keyAction{dir: dirDown}
	case tcell.KeyLeft:
		return keyAction{dir: dirLeft}
	case tcell.KeyRight:
		return keyAction{dir: dirRight}
	case tcell.KeyRune:
	default:
		return keyAction{}
	}

	switch r {
	case 'w', 'W':
		return keyAction{dir: dirUp}
	case 's', 'S':
		return keyAction{dir: dirDown}
	case 'a', 'A':
		return keyAction{dir: dirLeft}
	case 'd', 'D':
		return keyAction{dir: dirRight}
	case 'q', 'Q':
		return keyAction{cmd: input.CommandEat}
	case 'f', 'F':
		return keyAction{cmd: input.CommandBuildFire}
	case 'b', 'B':
		return keyAction{cmd: input.CommandArmBeacon}
	case 'r', 'R':
		return keyAction{cmd: input.CommandSleep}
	case 'p', 'P':
		return keyAction{pause: true}
	}
	return keyAction{}
}

// heldKeys turns a stream of key presses into a per-frame movement intent.
type heldKeys struct {
	window time.Duration
	last   map[direction]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{window: window, last: make(map[direction]time.Time, 4)}
}

func (h *heldKeys) press(d direction, at time.Time) {
	if d != dirNone {
		h.last[d] = at
	}
}

func (h *heldKeys) releaseAll() {
	clear(h.last)
}

func (h *heldKeys) held(d direction, now time.Time) bool {
	at, ok := h.last[d]
	return ok && now.Sub(at) <= h.window
}

// intent returns the movement for a frame sampled at now. Opposite
// directions cancel out.
func (h *heldKeys) intent(now time.Time) input.Intent {
	var in input.Intent
	if h.held(dirLeft, now) {
		in.DX--
	}
	if h.held(dirRight, now) {
		in.DX++
	}
	if h.held(dirUp, now) {
		in.DY--
	}
	if h.held(dirDown, now) {
		in.DY++
	}
	return in
}
