package entity

import (
	"math"

	"github.com/samdwyer/stranded/internal/world"
)

// PlayerTuning holds movement, stamina and food constants.
// Rates are per second.
type PlayerTuning struct {
	Speed        float64 `yaml:"speed"`
	MoveDrain    float64 `yaml:"move_drain"`
	BlockedDrain float64 `yaml:"blocked_drain"`
	RestRegen    float64 `yaml:"rest_regen"`
	EatHealth    float64 `yaml:"eat_health"`
	EatWarmth    float64 `yaml:"eat_warmth"`
	PickupRadius float64 `yaml:"pickup_radius"`

	StartingInventory map[world.Kind]int `yaml:"starting_inventory"`
}

// DefaultPlayerTuning returns the stock player constants.
func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		Speed:        520, // world units per second at full energy
		MoveDrain:    6,
		BlockedDrain: 2,
		RestRegen:    15,
		EatHealth:    20,
		EatWarmth:    10,
		PickupRadius: 22,
		StartingInventory: map[world.Kind]int{
			world.KindFood: 1,
			world.KindWood: 2,
		},
	}
}

// Player is the survivor. Position is in world units.
type Player struct {
	X, Y             float64
	FacingX, FacingY float64

	health, energy, warmth float64
	Inventory              Inventory

	tuning PlayerTuning
}

// NewPlayer creates a fully rested player at the given position.
func NewPlayer(x, y float64, tuning PlayerTuning) *Player {
	inv := make(Inventory)
	for kind, n := range tuning.StartingInventory {
		inv.Add(kind, n)
	}
	return &Player{
		X:         x,
		Y:         y,
		FacingY:   1,
		health:    VitalMax,
		energy:    VitalMax,
		warmth:    VitalMax,
		Inventory: inv,
		tuning:    tuning,
	}
}

func (p *Player) Health() float64 { return p.health }
func (p *Player) Energy() float64 { return p.energy }
func (p *Player) Warmth() float64 { return p.warmth }

// Vital returns the current value of v.
func (p *Player) Vital(v Vital) float64 {
	switch v {
	case VitalHealth:
		return p.health
	case VitalEnergy:
		return p.energy
	case VitalWarmth:
		return p.warmth
	default:
		return 0
	}
}

// SetVital sets v, clamped to [0, VitalMax].
func (p *Player) SetVital(v Vital, value float64) {
	switch v {
	case VitalHealth:
		p.health = clampVital(value)
	case VitalEnergy:
		p.energy = clampVital(value)
	case VitalWarmth:
		p.warmth = clampVital(value)
	}
}

// AdjustVital adds delta to v, clamped to [0, VitalMax].
func (p *Player) AdjustVital(v Vital, delta float64) {
	p.SetVital(v, p.Vital(v)+delta)
}

// EffectiveSpeed is the base speed scaled by energy; an exhausted player
// still moves at 60%.
func (p *Player) EffectiveSpeed() float64 {
	return p.tuning.Speed * (0.6 + p.energy/200)
}

// Move walks toward (dx, dy) for dt seconds. blocked is checked against the
// proposed position only; a blocked step leaves the player in place but
// still costs a little energy. It reports whether the player moved.
func (p *Player) Move(dx, dy, dt float64, blocked func(x, y float64) bool) bool {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return false
	}
	dx, dy = dx/length, dy/length
	p.FacingX, p.FacingY = dx, dy

	step := p.EffectiveSpeed() * dt
	targetX := p.X + dx*step
	targetY := p.Y + dy*step

	if blocked != nil && blocked(targetX, targetY) {
		p.AdjustVital(VitalEnergy, -p.tuning.BlockedDrain*dt)
		return false
	}
	p.X, p.Y = targetX, targetY
	p.AdjustVital(VitalEnergy, -p.tuning.MoveDrain*dt)
	return true
}

// Rest recovers energy for dt seconds.
func (p *Player) Rest(dt float64) {
	p.AdjustVital(VitalEnergy, p.tuning.RestRegen*dt)
}

// Eat consumes one food for health and warmth. It reports false, changing
// nothing, when there is no food.
func (p *Player) Eat() bool {
	if !p.Inventory.Spend(map[world.Kind]int{world.KindFood: 1}) {
		return false
	}
	p.AdjustVital(VitalHealth, p.tuning.EatHealth)
	p.AdjustVital(VitalWarmth, p.tuning.EatWarmth)
	return true
}

// Collect adds one unit of kind to the inventory.
func (p *Player) Collect(kind world.Kind) {
	p.Inventory.Add(kind, 1)
}

// Restore refills every vital.
func (p *Player) Restore() {
	p.health, p.energy, p.warmth = VitalMax, VitalMax, VitalMax
}

// DistanceTo returns the distance in world units to (x, y).
func (p *Player) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// IsAlive returns true while health is above zero.
func (p *Player) IsAlive() bool {
	return p.health > 0
}
