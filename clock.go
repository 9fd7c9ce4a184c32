package solarsystem

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// MaxStepSeconds is the largest rate, in seconds per tick, that ScaleRate accepts.
// It is the span of a time.Duration.
const MaxStepSeconds = float64(math.MaxInt64 / int64(time.Second))

type clockState uint8

const (
	running clockState = iota
	paused
)

func (s clockState) String() string {
	if s == paused {
		return "paused"
	}
	return "running"
}

// Clock is the simulation calendar. Each Advance moves the current instant by the step,
// which is zero while paused.
type Clock struct {
	now    time.Time
	step   float64 // seconds per tick
	cached float64 // rate to restore on resume
	state  clockState
}

// NewClock returns a running clock.
func NewClock(start time.Time, stepSeconds float64) *Clock {
	return &Clock{now: start.UTC(), step: stepSeconds}
}

// Advance moves the clock by one tick. Steps longer than MaxStepSeconds are applied
// in several additions.
func (c *Clock) Advance() {
	s := c.step
	for math.Abs(s) > MaxStepSeconds {
		chunk := math.Copysign(MaxStepSeconds, s)
		c.now = c.now.Add(seconds(chunk))
		s -= chunk
	}
	c.now = c.now.Add(seconds(s))
}

// Pause caches the current rate and stops the clock. Pausing a paused clock does nothing.
func (c *Clock) Pause() {
	if c.state == paused {
		return
	}
	c.cached, c.step = c.step, 0
	c.state = paused
}

// Resume restores the rate cached by Pause. Resuming a running clock does nothing.
func (c *Clock) Resume() {
	if c.state == running {
		return
	}
	c.step, c.cached = c.cached, 0
	c.state = running
}

// Toggle flips between running and paused.
func (c *Clock) Toggle() {
	if c.state == paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// ScaleRate multiplies the rate by factor. While paused, the cached rate is scaled instead
// so that the change applies on resume. A rate beyond MaxStepSeconds is refused and the
// clock is left unchanged.
func (c *Clock) ScaleRate(factor float64) error {
	if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("factor %g: %w", factor, ErrInvalidRate)
	}
	rate := &c.step
	if c.state == paused {
		rate = &c.cached
	}
	scaled := *rate * factor
	if math.Abs(scaled) > MaxStepSeconds {
		return fmt.Errorf("rate %g s/tick exceeds %g: %w", scaled, MaxStepSeconds, ErrInvalidRate)
	}
	*rate = scaled
	return nil
}

// Now returns the current instant (UTC).
func (c *Clock) Now() time.Time {
	return c.now
}

// Step returns the active number of seconds per tick.
func (c *Clock) Step() float64 {
	return c.step
}

// Rate returns the seconds per tick the clock runs at once resumed.
func (c *Clock) Rate() float64 {
	if c.state == paused {
		return c.cached
	}
	return c.step
}

// Paused returns whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.state == paused
}

// JulianDay returns the current instant as a Julian day.
func (c *Clock) JulianDay() float64 {
	return julian.TimeToJD(c.now)
}

func (c *Clock) String() string {
	return fmt.Sprintf("%s (%s, %.0f s/tick)", c.now.Format(dateFormat), c.state, c.Rate())
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
