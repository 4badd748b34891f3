// Package random provides the seeded generator used for world generation
// and helpers for choosing and parsing seeds.
package random

// Source produces a reproducible stream of floats in [0, 1).
type Source interface {
	Float64() float64
}

// Mulberry32 is a 32-bit state generator. All arithmetic is done on uint32,
// so a given seed yields the same stream on every platform.
type Mulberry32 struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed int32) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t = (t + (t^t>>7)*(t|61)) ^ t
	return float64(t^t>>14) / 4294967296
}
