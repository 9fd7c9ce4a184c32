package solarsystem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	rad2deg = 180 / math.Pi
	// SecondsPerYear is the number of seconds in a Julian year.
	SecondsPerYear = 60 * 60 * 24 * 365.25
)

// DistanceToReference returns the distance from the body to the reference, which sits at the origin.
func DistanceToReference(b *Body) float64 {
	return r2.Norm(b.Position)
}

// Distance returns the separation between two bodies.
func Distance(a, b *Body) float64 {
	return r2.Norm(r2.Sub(a.Position, b.Position))
}

// AngleAtReference returns the angle in degrees between a and b as seen from the reference
// (the origin), computed with the law of cosines.
func AngleAtReference(a, b *Body) (float64, error) {
	dA := DistanceToReference(a)
	dB := DistanceToReference(b)
	if dA == 0 || dB == 0 {
		return 0, fmt.Errorf("angle %s/%s: %w", a.Name, b.Name, ErrDegenerateGeometry)
	}
	dAB := Distance(a, b)
	cosθ := (dA*dA + dB*dB - dAB*dAB) / (2 * dA * dB)
	// Rounding may push the cosine slightly out of [-1, 1].
	cosθ = math.Max(-1, math.Min(1, cosθ))
	return math.Acos(cosθ) * rad2deg, nil
}

// OrbitalPeriod returns the Keplerian period in seconds of a circular orbit of radius r (m)
// around a primary of mass m (kg).
func (g Gravity) OrbitalPeriod(r, m float64) (float64, error) {
	if !(r > 0) {
		return 0, fmt.Errorf("orbital radius %g m: %w", r, ErrDegenerateGeometry)
	}
	if !(m > 0) {
		return 0, fmt.Errorf("primary mass %g kg: %w", m, ErrInvalidConfiguration)
	}
	return 2 * math.Pi * math.Sqrt(math.Pow(r, 3)/(g.G*m)), nil
}

// OrbitalPeriodYears is OrbitalPeriod in Julian years.
func (g Gravity) OrbitalPeriodYears(r, m float64) (float64, error) {
	seconds, err := g.OrbitalPeriod(r, m)
	if err != nil {
		return 0, err
	}
	return seconds / SecondsPerYear, nil
}

// Readout is the information displayed for a focused body.
type Readout struct {
	Name          string
	Speed         float64 // m/s
	OrbitalRadius float64 // km
	PeriodYears   float64 // zero for primary bodies
}

func (r Readout) String() string {
	return fmt.Sprintf("%s: v=%.1f m/s r=%.0f km T=%.2f y", r.Name, r.Speed, r.OrbitalRadius, r.PeriodYears)
}
