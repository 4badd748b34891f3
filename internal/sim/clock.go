package sim

import "math"

// Clock tracks the time of day and how many days have passed.
type Clock struct {
	TimeOfDay float64
	Days      int

	tuning ClockTuning
}

// NewClock starts at the beginning of day one.
func NewClock(tuning ClockTuning) Clock {
	return Clock{tuning: tuning}
}

// Advance moves the clock forward by dt seconds, wrapping at day length.
func (c *Clock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.TimeOfDay += dt
	for c.tuning.DayLength > 0 && c.TimeOfDay >= c.tuning.DayLength {
		c.TimeOfDay -= c.tuning.DayLength
		c.Days++
	}
}

// IsNight reports whether the clock is inside the night window.
func (c Clock) IsNight() bool {
	return c.TimeOfDay > c.tuning.NightStart && c.TimeOfDay < c.tuning.NightEnd
}

// Day returns the 1-based day number.
func (c Clock) Day() int {
	return c.Days + 1
}

// SkipToMorning jumps to the next morning. Sleeping before morning only
// moves the clock forward within the same day.
func (c *Clock) SkipToMorning() {
	if c.TimeOfDay > c.tuning.Morning {
		c.Days++
	}
	c.TimeOfDay = c.tuning.Morning
}

// Set moves the clock to t within the current day, wrapping out-of-range
// values into [0, day length).
func (c *Clock) Set(t float64) {
	if c.tuning.DayLength <= 0 {
		c.TimeOfDay = max(0, t)
		return
	}
	t = math.Mod(t, c.tuning.DayLength)
	if t < 0 {
		t += c.tuning.DayLength
	}
	c.TimeOfDay = t
}
