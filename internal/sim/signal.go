package sim

import "github.com/samdwyer/stranded/internal/world"

// SignalKind identifies something the host may want to react to.
type SignalKind int

const (
	SignalPickup SignalKind = iota
	SignalFireBuilt
	SignalBeaconArmed
	// SignalDeath and SignalRescued are raised exactly once and end the session.
	SignalDeath
	SignalRescued
)

// String returns a human-readable signal name.
func (k SignalKind) String() string {
	switch k {
	case SignalPickup:
		return "pickup"
	case SignalFireBuilt:
		return "fire_built"
	case SignalBeaconArmed:
		return "beacon_armed"
	case SignalDeath:
		return "death"
	case SignalRescued:
		return "rescued"
	default:
		return "unknown"
	}
}

// Signal is a one-shot notification from the simulation.
type Signal struct {
	Kind     SignalKind
	Resource world.Kind // set for SignalPickup
	Elapsed  float64    // simulated seconds since the session began
	Message  string
}
