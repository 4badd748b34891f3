package sim

import (
	"math"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/world"
)

// The methods in this file let scripted scenarios set up situations directly.
// They go through the same clamping as normal play and do nothing once the
// session has ended.

// Give adds n of kind to the player's inventory.
func (s *Simulation) Give(kind world.Kind, n int) {
	if s.phase.Terminal() {
		return
	}
	s.player.Inventory.Add(kind, n)
}

// SetVital sets one of the player's vitals.
func (s *Simulation) SetVital(v entity.Vital, value float64) {
	if s.phase.Terminal() {
		return
	}
	s.player.SetVital(v, value)
}

// Teleport moves the player to a world position without checking terrain.
func (s *Simulation) Teleport(x, y float64) {
	if s.phase.Terminal() || !isFinite(x) || !isFinite(y) {
		return
	}
	s.player.X, s.player.Y = x, y
	s.shelter = s.currentShelter()
}

// SetTimeOfDay moves the clock within the current day.
func (s *Simulation) SetTimeOfDay(t float64) {
	if s.phase.Terminal() || !isFinite(t) {
		return
	}
	s.clock.Set(t)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
