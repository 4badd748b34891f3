// Package game provides the real-time terminal host: it samples the
// keyboard, steps a simulation on a fixed tick and renders each frame.
package game

// State represents what the host loop is doing.
type State int

const (
	// StatePlaying advances the simulation every tick.
	StatePlaying State = iota
	// StatePaused keeps rendering but stops the simulation clock.
	StatePaused
	// StateOver means the session reached a terminal phase; only quitting
	// is possible.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}
