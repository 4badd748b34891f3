// Package sim is the survival simulation: one Simulation owns a world, the
// player, their campfires, the clock and the rescue state, and advances them
// one frame at a time.
package sim

import (
	"errors"
	"fmt"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/world"
)

// Tuning collects every gameplay constant. Distances are in world units and
// rates are per second.
type Tuning struct {
	World    world.Params        `yaml:"world"`
	Player   entity.PlayerTuning `yaml:"player"`
	Clock    ClockTuning         `yaml:"clock"`
	Heat     HeatTuning          `yaml:"heat"`
	Campfire CampfireTuning      `yaml:"campfire"`
	Rescue   RescueTuning        `yaml:"rescue"`

	// MaxStep caps the dt of a single Update. It may not exceed MaxStepLimit.
	MaxStep float64 `yaml:"max_step"`
}

// MaxStepLimit is the largest frame step any tuning may ask for. A stalled
// frame must never turn into seconds of exposure.
const MaxStepLimit = 0.05

// Island shapes outside this peak range stop looking like islands.
const (
	MinPeakCount = 8
	MaxPeakCount = 10
)

// ClockTuning shapes the day cycle, in seconds.
type ClockTuning struct {
	DayLength  float64 `yaml:"day_length"`
	NightStart float64 `yaml:"night_start"`
	NightEnd   float64 `yaml:"night_end"`
	Morning    float64 `yaml:"morning"`
}

// HeatTuning drives warmth, shelter and exposure damage.
type HeatTuning struct {
	ShipRadius         float64 `yaml:"ship_radius"`
	FireRadius         float64 `yaml:"fire_radius"`
	ShipWarmthGain     float64 `yaml:"ship_warmth_gain"`
	ShipEnergyGain     float64 `yaml:"ship_energy_gain"`
	FireWarmthGain     float64 `yaml:"fire_warmth_gain"`
	DayChill           float64 `yaml:"day_chill"`
	NightChill         float64 `yaml:"night_chill"`
	ShelterChillFactor float64 `yaml:"shelter_chill_factor"`
	CriticalWarmth     float64 `yaml:"critical_warmth"`
	ExposureDamage     float64 `yaml:"exposure_damage"`
	ShipExposureDamage float64 `yaml:"ship_exposure_damage"`
}

// CampfireTuning prices and times campfires.
type CampfireTuning struct {
	WoodCost int     `yaml:"wood_cost"`
	BurnTime float64 `yaml:"burn_time"`
}

// RescueTuning prices the beacon and sets how long help takes to arrive.
type RescueTuning struct {
	Cost     map[world.Kind]int `yaml:"cost"`
	Duration float64            `yaml:"duration"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		World:  world.DefaultParams(),
		Player: entity.DefaultPlayerTuning(),
		Clock: ClockTuning{
			DayLength:  120,
			NightStart: 70,
			NightEnd:   110,
			Morning:    10,
		},
		Heat: HeatTuning{
			ShipRadius:         80,
			FireRadius:         90,
			ShipWarmthGain:     25,
			ShipEnergyGain:     25,
			FireWarmthGain:     20,
			DayChill:           4,
			NightChill:         8,
			ShelterChillFactor: 0.2,
			CriticalWarmth:     25,
			ExposureDamage:     4,
			ShipExposureDamage: 1,
		},
		Campfire: CampfireTuning{
			WoodCost: 3,
			BurnTime: 60,
		},
		Rescue: RescueTuning{
			Cost: map[world.Kind]int{
				world.KindFood:  3,
				world.KindWood:  6,
				world.KindOil:   3,
				world.KindScrap: 2,
			},
			Duration: 20,
		},
		MaxStep: MaxStepLimit,
	}
}

// Validate reports values the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.MaxStep <= 0 || t.MaxStep > MaxStepLimit {
		errs = append(errs, fmt.Errorf("max_step must be in (0, %v], got %v", MaxStepLimit, t.MaxStep))
	}
	if t.Clock.DayLength <= 0 {
		errs = append(errs, fmt.Errorf("clock.day_length must be positive, got %v", t.Clock.DayLength))
	}
	if t.Clock.NightStart > t.Clock.NightEnd {
		errs = append(errs, fmt.Errorf("clock.night_start %v is after night_end %v", t.Clock.NightStart, t.Clock.NightEnd))
	}
	if t.Clock.Morning < 0 || t.Clock.Morning >= t.Clock.DayLength {
		errs = append(errs, fmt.Errorf("clock.morning %v outside the day", t.Clock.Morning))
	}
	if t.Campfire.WoodCost < 0 {
		errs = append(errs, fmt.Errorf("campfire.wood_cost must not be negative, got %d", t.Campfire.WoodCost))
	}
	for kind, n := range t.Rescue.Cost {
		if _, ok := world.ParseKind(string(kind)); !ok {
			errs = append(errs, fmt.Errorf("rescue.cost: unknown resource %q", kind))
		}
		if n < 0 {
			errs = append(errs, fmt.Errorf("rescue.cost.%s must not be negative, got %d", kind, n))
		}
	}
	if pc := t.World.Terrain.PeakCount; pc < MinPeakCount || pc > MaxPeakCount {
		errs = append(errs, fmt.Errorf("world.terrain.peak_count must be in [%d, %d], got %d", MinPeakCount, MaxPeakCount, pc))
	}
	w := t.World.Terrain
	if !(w.WaterBelow <= w.SandBelow && w.SandBelow <= w.RockAbove) {
		errs = append(errs, errors.New("world.terrain thresholds must ascend: water_below <= sand_below <= rock_above"))
	}
	return errors.Join(errs...)
}
