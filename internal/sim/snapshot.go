package sim

import (
	"github.com/samdwyer/stranded/internal/world"
)

// PlayerView is the player's state as seen by a renderer.
type PlayerView struct {
	X, Y             float64
	FacingX, FacingY float64
	Health           float64
	Energy           float64
	Warmth           float64
}

// CampfireView is one campfire as seen by a renderer.
type CampfireView struct {
	X, Y   float64
	Timer  float64
	Active bool
}

// Snapshot is a copy of everything a HUD or renderer needs for one frame.
// Mutating it has no effect on the simulation.
type Snapshot struct {
	Seed      int32
	Day       int
	TimeOfDay float64
	DayLength float64
	Night     bool
	Elapsed   float64
	Phase     Phase

	Player    PlayerView
	Inventory map[world.Kind]int
	Hints     []string

	// BeaconCost is what is still missing to arm the beacon. It is nil once
	// the beacon is armed.
	BeaconCost      map[world.Kind]int
	RescueRemaining float64

	NearShip bool
	NearFire bool
	ShipX    float64
	ShipY    float64

	Campfires []CampfireView
	Resources []world.ResourceNode // uncollected only
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	p := s.player
	shipX, shipY := s.world.Center()
	snap := Snapshot{
		Seed:      s.world.Seed,
		Day:       s.clock.Day(),
		TimeOfDay: s.clock.TimeOfDay,
		DayLength: s.tuning.Clock.DayLength,
		Night:     s.clock.IsNight(),
		Elapsed:   s.elapsed,
		Phase:     s.phase,
		Player: PlayerView{
			X:       p.X,
			Y:       p.Y,
			FacingX: p.FacingX,
			FacingY: p.FacingY,
			Health:  p.Health(),
			Energy:  p.Energy(),
			Warmth:  p.Warmth(),
		},
		Inventory: p.Inventory.Clone(),
		Hints:     s.hints.list(),
		NearShip:  s.shelter.nearShip,
		NearFire:  s.shelter.nearFire,
		ShipX:     shipX,
		ShipY:     shipY,
	}

	switch s.phase {
	case PhaseExploring:
		snap.BeaconCost = p.Inventory.Missing(s.tuning.Rescue.Cost)
	case PhaseBeaconArmed:
		snap.RescueRemaining = max(0, s.tuning.Rescue.Duration-s.rescueTimer)
	}

	snap.Campfires = make([]CampfireView, 0, len(s.campfires))
	for _, f := range s.campfires {
		snap.Campfires = append(snap.Campfires, CampfireView{X: f.X, Y: f.Y, Timer: f.Timer, Active: f.Active()})
	}
	for _, r := range s.world.Resources() {
		if !r.Collected {
			snap.Resources = append(snap.Resources, r)
		}
	}
	return snap
}
