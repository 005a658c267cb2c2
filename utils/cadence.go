package utils

import "time"

// Cadence decides when the next generation is due. It accumulates frame
// time and fires once the total passes the configured period.
//
// The caller's loop owns the Cadence; there is no shared timer state.
type Cadence struct {
	period  time.Duration
	elapsed time.Duration
}

// NewCadence returns a Cadence that fires every secondsPerGeneration
func NewCadence(secondsPerGeneration float64) *Cadence {
	return &Cadence{period: time.Duration(secondsPerGeneration * float64(time.Second))}
}

// Period returns the time between generations
func (c *Cadence) Period() time.Duration {
	return c.period
}

// Elapsed returns the time accumulated since the last generation
func (c *Cadence) Elapsed() time.Duration {
	return c.elapsed
}

// Tick adds dt and reports whether a generation is due. When it fires the
// accumulator restarts from zero, so at most one generation runs per tick.
func (c *Cadence) Tick(dt time.Duration) bool {
	c.elapsed += dt
	if c.elapsed > c.period {
		c.elapsed = 0
		return true
	}
	return false
}
