// Package input defines the values the simulation accepts from its host:
// a movement intent sampled once per frame and discrete commands.
package input

import "math"

// Intent is the movement direction for one frame. The zero value means the
// player is resting.
type Intent struct {
	DX, DY float64
}

// Resting reports whether the intent carries no movement.
func (i Intent) Resting() bool {
	return i.DX == 0 && i.DY == 0
}

// Normalized returns the intent scaled to unit length. Non-finite components
// are treated as zero.
func (i Intent) Normalized() Intent {
	dx, dy := finite(i.DX), finite(i.DY)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Intent{}
	}
	return Intent{DX: dx / length, DY: dy / length}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
