package sim

func (s *Simulation) stepRescue(dt float64) {
	if s.phase != PhaseBeaconArmed {
		return
	}
	s.rescueTimer += dt
	if s.rescueTimer > s.tuning.Rescue.Duration {
		s.finish(PhaseRescued, SignalRescued, "Rescued! You signaled long enough to be found.")
	}
}

// finish moves to a terminal phase and raises its signal. It only ever
// runs once per session because every caller checks Terminal first.
func (s *Simulation) finish(phase Phase, kind SignalKind, msg string) {
	s.phase = phase
	s.raise(Signal{Kind: kind, Message: msg})
}

// ArmBeacon lights the rescue beacon. It needs the player at the ship with
// the full rescue cost in hand; the cost is paid all at once. Once armed it
// stays armed.
func (s *Simulation) ArmBeacon() bool {
	if s.phase != PhaseExploring || !s.inShipZone() {
		return false
	}
	if !s.player.Inventory.Spend(s.tuning.Rescue.Cost) {
		return false
	}
	s.phase = PhaseBeaconArmed
	s.rescueTimer = 0
	s.hints.add(hintBeaconLit)
	s.raise(Signal{Kind: SignalBeaconArmed, Message: hintBeaconLit})
	return true
}

// SleepAtShip skips to morning and fully restores the player. It only works
// inside the ship zone and does not change the phase.
func (s *Simulation) SleepAtShip() bool {
	if s.phase.Terminal() || !s.inShipZone() {
		return false
	}
	s.clock.SkipToMorning()
	s.player.Restore()
	return true
}
