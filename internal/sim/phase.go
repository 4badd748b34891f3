package sim

// Phase is the rescue state of a session.
type Phase int

const (
	// PhaseExploring is the default phase: gather, survive, head for the ship.
	PhaseExploring Phase = iota
	// PhaseBeaconArmed means the beacon is lit and rescue is counting down.
	PhaseBeaconArmed
	// PhaseRescued is the terminal win.
	PhaseRescued
	// PhaseDead is the terminal loss.
	PhaseDead
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseExploring:
		return "exploring"
	case PhaseBeaconArmed:
		return "beacon_armed"
	case PhaseRescued:
		return "rescued"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (p Phase) Terminal() bool {
	return p == PhaseRescued || p == PhaseDead
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, bool) {
	for _, p := range []Phase{PhaseExploring, PhaseBeaconArmed, PhaseRescued, PhaseDead} {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}
