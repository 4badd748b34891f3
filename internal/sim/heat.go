package sim

import (
	"github.com/samdwyer/stranded/internal/entity"
)

// shelter describes what is keeping the player warm this frame.
type shelter struct {
	nearShip bool
	nearFire bool
}

func (s shelter) sheltered() bool {
	return s.nearShip || s.nearFire
}

// exposure returns the per-second change in warmth and energy.
// The ship boost and the fire boost never stack; chill always applies but is
// reduced under shelter, so the boost still wins there.
func exposure(h HeatTuning, sh shelter, night bool) (warmth, energy float64) {
	switch {
	case sh.nearShip:
		warmth += h.ShipWarmthGain
		energy += h.ShipEnergyGain
	case sh.nearFire:
		warmth += h.FireWarmthGain
	}

	chill := h.DayChill
	if night {
		chill = h.NightChill
	}
	if sh.sheltered() {
		chill *= h.ShelterChillFactor
	}
	warmth -= chill
	return warmth, energy
}

// exposureDamage returns health lost per second at the given warmth.
// Being at the ship softens the damage even once warmth is critical.
func exposureDamage(h HeatTuning, sh shelter, warmth float64) float64 {
	if warmth >= h.CriticalWarmth {
		return 0
	}
	if sh.nearShip {
		return h.ShipExposureDamage
	}
	return h.ExposureDamage
}

// currentShelter measures the player's distance to the ship and every
// burning fire.
func (s *Simulation) currentShelter() shelter {
	return shelter{
		nearShip: s.inShipZone(),
		nearFire: s.nearActiveFire(),
	}
}

func (s *Simulation) inShipZone() bool {
	cx, cy := s.world.Center()
	return s.player.DistanceTo(cx, cy) < s.tuning.Heat.ShipRadius
}

func (s *Simulation) nearActiveFire() bool {
	for _, f := range s.campfires {
		if f.Active() && s.player.DistanceTo(f.X, f.Y) < s.tuning.Heat.FireRadius {
			return true
		}
	}
	return false
}

// applyHeat runs the environment step. Order matters: boosts and chill
// first, then damage from the resulting warmth.
func (s *Simulation) applyHeat(dt float64) {
	sh := s.currentShelter()
	s.shelter = sh

	warmthRate, energyRate := exposure(s.tuning.Heat, sh, s.clock.IsNight())
	s.player.AdjustVital(entity.VitalWarmth, warmthRate*dt)
	s.player.AdjustVital(entity.VitalEnergy, energyRate*dt)

	if dmg := exposureDamage(s.tuning.Heat, sh, s.player.Warmth()); dmg > 0 {
		s.player.AdjustVital(entity.VitalHealth, -dmg*dt)
	}
}
