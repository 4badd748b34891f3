package sim

import (
	"fmt"
	"math"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/input"
	"github.com/samdwyer/stranded/internal/world"
)

const (
	hintMove      = "WASD / Arrow Keys to move"
	hintControls  = "Walk over supplies to gather, Q to eat, F to build fire"
	hintStayWarm  = "Stay warm near fires or the ship!"
	hintBeacon    = "Press B at the ship to arm the beacon"
	hintBeaconLit = "Beacon lit! Hold out until rescue arrives."
)

// Options configures a Simulation.
type Options struct {
	// OnSignal, if set, is called synchronously for every signal as it is
	// raised. Signals are also queued for DrainSignals.
	OnSignal func(Signal)
}

// Simulation is one play session. It is not safe for concurrent use; a host
// drives it from a single goroutine. Separate Simulations share nothing.
type Simulation struct {
	world     *world.World
	tuning    Tuning
	player    *entity.Player
	campfires []*entity.Campfire
	clock     Clock

	phase       Phase
	rescueTimer float64
	elapsed     float64
	shelter     shelter

	hints    *hintLog
	pending  []Signal
	onSignal func(Signal)
}

// New starts a session on w with the player at the ship.
func New(w *world.World, tuning Tuning, opts Options) *Simulation {
	cx, cy := w.Center()
	s := &Simulation{
		world:    w,
		tuning:   tuning,
		player:   entity.NewPlayer(cx, cy, tuning.Player),
		clock:    NewClock(tuning.Clock),
		phase:    PhaseExploring,
		hints:    newHintLog(hintMove, hintControls, hintStayWarm),
		onSignal: opts.OnSignal,
	}
	s.shelter = s.currentShelter()
	return s
}

// Update advances the session by dt seconds with the given movement intent.
// dt is clamped to [0, MaxStep]. Once the session has ended Update does
// nothing.
func (s *Simulation) Update(dt float64, intent input.Intent) {
	if s.phase.Terminal() {
		return
	}
	dt = s.clampStep(dt)
	if dt == 0 {
		return
	}

	s.elapsed += dt
	s.clock.Advance(dt)
	s.stepPlayer(dt, intent)
	s.collectNearby()
	for _, f := range s.campfires {
		f.Tick(dt)
	}
	s.applyHeat(dt)

	if !s.player.IsAlive() {
		s.finish(PhaseDead, SignalDeath, "You succumbed to the cold.")
		return
	}
	s.stepRescue(dt)
	s.refreshHints()
}

func (s *Simulation) clampStep(dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return min(dt, s.tuning.MaxStep, MaxStepLimit)
}

func (s *Simulation) stepPlayer(dt float64, intent input.Intent) {
	dir := intent.Normalized()
	if dir.Resting() {
		s.player.Rest(dt)
		return
	}
	s.player.Move(dir.DX, dir.DY, dt, s.world.IsBlocked)
}

// collectNearby picks up every uncollected node in reach, however many.
func (s *Simulation) collectNearby() {
	for _, i := range s.world.ResourcesWithin(s.player.X, s.player.Y, s.tuning.Player.PickupRadius) {
		kind, ok := s.world.Collect(i)
		if !ok {
			continue
		}
		s.player.Collect(kind)
		if kind == world.KindWood {
			s.hints.add(fmt.Sprintf("Press F to place a campfire (%d wood)", s.tuning.Campfire.WoodCost))
		}
		s.raise(Signal{Kind: SignalPickup, Resource: kind})
	}
}

func (s *Simulation) refreshHints() {
	if s.phase == PhaseExploring && s.shelter.nearShip && s.player.Inventory.Has(s.tuning.Rescue.Cost) {
		s.hints.add(hintBeacon)
	}
}

func (s *Simulation) raise(sig Signal) {
	sig.Elapsed = s.elapsed
	s.pending = append(s.pending, sig)
	if s.onSignal != nil {
		s.onSignal(sig)
	}
}

// DrainSignals returns the signals raised since the last call.
func (s *Simulation) DrainSignals() []Signal {
	out := s.pending
	s.pending = nil
	return out
}

// Phase returns the current rescue phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Seed returns the seed the world was generated from.
func (s *Simulation) Seed() int32 {
	return s.world.Seed
}

// Terrain is read-only access to the tile grid.
type Terrain interface {
	Tile(x, y int) world.Tile
}

// Terrain exposes the world's tiles to renderers.
func (s *Simulation) Terrain() Terrain {
	return s.world
}

// Eat consumes one food. It reports false if there was none.
func (s *Simulation) Eat() bool {
	if s.phase.Terminal() {
		return false
	}
	return s.player.Eat()
}

// BuildFire spends wood to light a campfire where the player stands.
func (s *Simulation) BuildFire() bool {
	if s.phase.Terminal() {
		return false
	}
	cost := map[world.Kind]int{world.KindWood: s.tuning.Campfire.WoodCost}
	if !s.player.Inventory.Spend(cost) {
		return false
	}
	s.campfires = append(s.campfires, entity.NewCampfire(s.player.X, s.player.Y, s.tuning.Campfire.BurnTime))
	s.raise(Signal{Kind: SignalFireBuilt})
	return true
}

// Apply runs a discrete command and reports whether it took effect.
func (s *Simulation) Apply(cmd input.Command) bool {
	switch cmd {
	case input.CommandEat:
		return s.Eat()
	case input.CommandBuildFire:
		return s.BuildFire()
	case input.CommandArmBeacon:
		return s.ArmBeacon()
	case input.CommandSleep:
		return s.SleepAtShip()
	default:
		return false
	}
}
