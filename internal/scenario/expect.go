package scenario

import (
	"fmt"
	"strings"

	"github.com/samdwyer/stranded/internal/entity"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/world"
)

// Bounds is an inclusive range; nil ends are open.
type Bounds struct {
	Min, Max *float64
}

// Expectation is a set of assertions against the simulation at one point in
// a scenario. Unset fields are not checked.
type Expectation struct {
	Phase       *sim.Phase
	Day         *int
	Vitals      map[entity.Vital]Bounds
	Inventory   map[world.Kind]int
	Signals     map[sim.SignalKind]int
	NearShip    *bool
	NearFire    *bool
	ActiveFires *int
}

var signalKinds = []sim.SignalKind{
	sim.SignalPickup, sim.SignalFireBuilt, sim.SignalBeaconArmed, sim.SignalDeath, sim.SignalRescued,
}

func parseSignalKind(name string) (sim.SignalKind, bool) {
	for _, k := range signalKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// parseExpectation converts an expect{} table. Keys are phase, day,
// <vital>_min, <vital>_max, inventory, signals, near_ship, near_fire and
// fires.
func parseExpectation(data map[string]any) (Expectation, error) {
	exp := Expectation{Vitals: map[entity.Vital]Bounds{}}
	for key, value := range data {
		switch key {
		case "phase":
			name, _ := value.(string)
			p, ok := sim.ParsePhase(name)
			if !ok {
				return exp, fmt.Errorf("unknown phase %v", value)
			}
			exp.Phase = &p
		case "day":
			n, ok := value.(int)
			if !ok {
				return exp, fmt.Errorf("day must be an integer")
			}
			exp.Day = &n
		case "near_ship", "near_fire":
			b, ok := value.(bool)
			if !ok {
				return exp, fmt.Errorf("%s must be a boolean", key)
			}
			if key == "near_ship" {
				exp.NearShip = &b
			} else {
				exp.NearFire = &b
			}
		case "fires":
			n, ok := value.(int)
			if !ok {
				return exp, fmt.Errorf("fires must be an integer")
			}
			exp.ActiveFires = &n
		case "inventory":
			counts, err := intTable(key, value)
			if err != nil {
				return exp, err
			}
			exp.Inventory = map[world.Kind]int{}
			for name, n := range counts {
				kind, ok := world.ParseKind(name)
				if !ok {
					return exp, fmt.Errorf("inventory: unknown resource %q", name)
				}
				exp.Inventory[kind] = n
			}
		case "signals":
			counts, err := intTable(key, value)
			if err != nil {
				return exp, err
			}
			exp.Signals = map[sim.SignalKind]int{}
			for name, n := range counts {
				kind, ok := parseSignalKind(name)
				if !ok {
					return exp, fmt.Errorf("signals: unknown signal %q", name)
				}
				exp.Signals[kind] = n
			}
		default:
			if err := exp.parseBound(key, value); err != nil {
				return exp, err
			}
		}
	}
	return exp, nil
}

func (e *Expectation) parseBound(key string, value any) error {
	name, end, found := strings.Cut(key, "_")
	vital, ok := entity.ParseVital(name)
	if !found || !ok || (end != "min" && end != "max") {
		return fmt.Errorf("unknown expectation %q", key)
	}
	v, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("%s must be a number", key)
	}
	b := e.Vitals[vital]
	if end == "min" {
		b.Min = &v
	} else {
		b.Max = &v
	}
	e.Vitals[vital] = b
	return nil
}

func intTable(key string, value any) (map[string]int, error) {
	table, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a table", key)
	}
	out := make(map[string]int, len(table))
	for name, v := range table {
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("%s.%s must be an integer", key, name)
		}
		out[name] = n
	}
	return out, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// check returns one message per failed assertion, in a stable order.
func (e Expectation) check(snap sim.Snapshot, signals map[sim.SignalKind]int) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.Phase != nil && snap.Phase != *e.Phase {
		fail("phase = %s, want %s", snap.Phase, *e.Phase)
	}
	if e.Day != nil && snap.Day != *e.Day {
		fail("day = %d, want %d", snap.Day, *e.Day)
	}
	for _, v := range []entity.Vital{entity.VitalHealth, entity.VitalEnergy, entity.VitalWarmth} {
		b, ok := e.Vitals[v]
		if !ok {
			continue
		}
		got := vitalOf(snap.Player, v)
		if b.Min != nil && got < *b.Min {
			fail("%s = %.2f, want >= %v", v, got, *b.Min)
		}
		if b.Max != nil && got > *b.Max {
			fail("%s = %.2f, want <= %v", v, got, *b.Max)
		}
	}
	for _, k := range world.Kinds {
		if want, ok := e.Inventory[k]; ok && snap.Inventory[k] != want {
			fail("inventory %s = %d, want %d", k, snap.Inventory[k], want)
		}
	}
	for _, k := range signalKinds {
		if want, ok := e.Signals[k]; ok && signals[k] != want {
			fail("signals %s = %d, want %d", k, signals[k], want)
		}
	}
	if e.NearShip != nil && snap.NearShip != *e.NearShip {
		fail("near_ship = %v, want %v", snap.NearShip, *e.NearShip)
	}
	if e.NearFire != nil && snap.NearFire != *e.NearFire {
		fail("near_fire = %v, want %v", snap.NearFire, *e.NearFire)
	}
	if e.ActiveFires != nil {
		active := 0
		for _, f := range snap.Campfires {
			if f.Active {
				active++
			}
		}
		if active != *e.ActiveFires {
			fail("active fires = %d, want %d", active, *e.ActiveFires)
		}
	}
	return failures
}

func vitalOf(p sim.PlayerView, v entity.Vital) float64 {
	switch v {
	case entity.VitalHealth:
		return p.Health
	case entity.VitalEnergy:
		return p.Energy
	default:
		return p.Warmth
	}
}
