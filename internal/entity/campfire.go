package entity

// Campfire is a placed heat source. Spent fires stay in the world.
type Campfire struct {
	X, Y  float64
	Timer float64 // seconds of burn left
}

// NewCampfire lights a fire at (x, y) that burns for burnTime seconds.
func NewCampfire(x, y, burnTime float64) *Campfire {
	return &Campfire{X: x, Y: y, Timer: burnTime}
}

// Tick burns the fire down by dt, never below zero.
func (c *Campfire) Tick(dt float64) {
	c.Timer = max(0, c.Timer-dt)
}

// Active returns true while the fire is still burning.
func (c *Campfire) Active() bool {
	return c.Timer > 0
}
