package sim

import (
	"testing"

	"github.com/samdwyer/stranded/internal/world"
)

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Errorf("DefaultTuning().Validate() = %v, want nil", err)
	}
}

func TestTuningValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero max step", func(tu *Tuning) { tu.MaxStep = 0 }},
		{"max step too long", func(tu *Tuning) { tu.MaxStep = 30 }},
		{"max step just over limit", func(tu *Tuning) { tu.MaxStep = MaxStepLimit * 1.01 }},
		{"no peaks", func(tu *Tuning) { tu.World.Terrain.PeakCount = 0 }},
		{"too few peaks", func(tu *Tuning) { tu.World.Terrain.PeakCount = MinPeakCount - 1 }},
		{"too many peaks", func(tu *Tuning) { tu.World.Terrain.PeakCount = MaxPeakCount + 1 }},
		{"zero day", func(tu *Tuning) { tu.Clock.DayLength = 0 }},
		{"night backwards", func(tu *Tuning) { tu.Clock.NightStart, tu.Clock.NightEnd = 100, 50 }},
		{"morning outside day", func(tu *Tuning) { tu.Clock.Morning = 500 }},
		{"negative fire cost", func(tu *Tuning) { tu.Campfire.WoodCost = -1 }},
		{"unknown cost kind", func(tu *Tuning) { tu.Rescue.Cost = map[world.Kind]int{"gold": 1} }},
		{"negative cost", func(tu *Tuning) { tu.Rescue.Cost = map[world.Kind]int{world.KindOil: -1} }},
		{"thresholds out of order", func(tu *Tuning) { tu.World.Terrain.SandBelow = 2 }},
	}

	for _, tt := range tests {
		tu := DefaultTuning()
		tt.mutate(&tu)
		if err := tu.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}
