// Package entity provides the player and the objects they place in the world.
package entity

import "math"

// VitalMax is the upper bound of every vital.
const VitalMax = 100.0

// Vital names a bounded player stat.
type Vital string

const (
	VitalHealth Vital = "health"
	VitalEnergy Vital = "energy"
	VitalWarmth Vital = "warmth"
)

// ParseVital returns the vital with the given name.
func ParseVital(name string) (Vital, bool) {
	switch Vital(name) {
	case VitalHealth, VitalEnergy, VitalWarmth:
		return Vital(name), true
	default:
		return "", false
	}
}

// clampVital bounds v to [0, VitalMax]. NaN collapses to 0.
func clampVital(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > VitalMax {
		return VitalMax
	}
	return v
}
