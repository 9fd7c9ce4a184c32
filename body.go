package solarsystem

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body defines a celestial object moving in the heliocentric plane.
// All physical quantities are SI: meters, meters per second and kilograms.
type Body struct {
	Name     string
	Position r2.Vec
	Velocity r2.Vec
	Radius   float64 // Display radius only, never used by the force model.
	Primary  bool    // Gravitationally dominant body (the Sun).
	Color    colorful.Color

	mass         float64
	lastDistance float64 // Distance from the most recent Force call with this body as the subject.
	trail        []r2.Vec
}

// NewBody returns a new body after checking that its mass and radius are strictly positive
// and that its state is finite.
func NewBody(name string, position, velocity r2.Vec, mass, radius float64, primary bool) (*Body, error) {
	if !(mass > 0) || math.IsInf(mass, 1) {
		return nil, fmt.Errorf("%s: mass %g kg: %w", name, mass, ErrInvalidConfiguration)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%s: radius %g: %w", name, radius, ErrInvalidConfiguration)
	}
	if !finite(position) || !finite(velocity) {
		return nil, fmt.Errorf("%s: non-finite state R=%v V=%v: %w", name, position, velocity, ErrInvalidConfiguration)
	}
	return &Body{
		Name:     name,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
		Primary:  primary,
		Color:    colorful.Color{R: 1, G: 1, B: 1},
		mass:     mass,
	}, nil
}

// Mass returns the mass in kilograms.
func (b *Body) Mass() float64 {
	return b.mass
}

// LastDistance returns the distance computed by the latest Force call on this body.
func (b *Body) LastDistance() float64 {
	return b.lastDistance
}

// Speed returns the norm of the velocity in m/s.
func (b *Body) Speed() float64 {
	return r2.Norm(b.Velocity)
}

// ScaleRadius multiplies the display radius, e.g. on zoom.
func (b *Body) ScaleRadius(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return fmt.Errorf("%s: radius factor %g: %w", b.Name, factor, ErrInvalidConfiguration)
	}
	b.Radius *= factor
	return nil
}

// Record appends the current position to the trail.
func (b *Body) Record() {
	b.trail = append(b.trail, b.Position)
}

// ClearTrail empties the trail.
func (b *Body) ClearTrail() {
	b.trail = b.trail[:0]
}

// Trail returns a copy of the recorded positions, oldest first.
func (b *Body) Trail() []r2.Vec {
	out := make([]r2.Vec, len(b.trail))
	copy(out, b.trail)
	return out
}

// TrailLen returns the number of recorded positions.
func (b *Body) TrailLen() int {
	return len(b.trail)
}

// String implements the Stringer interface.
func (b *Body) String() string {
	return b.Name + " body"
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
