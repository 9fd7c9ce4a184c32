package solarsystem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// GravitationalConstant is G in m^3 kg^-1 s^-2.
const GravitationalConstant = 6.67428e-11

// Gravity is the Newtonian force model.
type Gravity struct {
	G float64
}

// Newtonian uses the standard gravitational constant.
var Newtonian = Gravity{G: GravitationalConstant}

// Force returns the force exerted by b on a, in newtons, directed from a toward b.
// The separation is cached on a (see LastDistance). Coincident bodies yield a zero force.
func (g Gravity) Force(a, b *Body) r2.Vec {
	δ := r2.Sub(b.Position, a.Position)
	d := r2.Norm(δ)
	a.lastDistance = d
	if d == 0 {
		return r2.Vec{}
	}
	f := g.G * a.mass * b.mass / (d * d)
	sθ, cθ := math.Sincos(math.Atan2(δ.Y, δ.X))
	return r2.Vec{X: f * cθ, Y: f * sθ}
}

// ForceSummer computes the total force on every body of a collection.
// Implementations must fill forces[i] for bodies[i] without mutating any body state
// other than the distance cache.
type ForceSummer interface {
	Sum(bodies []*Body, forces []r2.Vec)
}

// Pairwise is the direct O(n²) summation.
type Pairwise struct {
	Gravity Gravity
}

// Sum implements ForceSummer. Primary bodies are visited last so that the distance
// cache of every other body refers to the primary once the sum is done.
func (p Pairwise) Sum(bodies []*Body, forces []r2.Vec) {
	for i, a := range bodies {
		var total r2.Vec
		for _, primaryPass := range []bool{false, true} {
			for _, b := range bodies {
				if b == a || b.Primary != primaryPass {
					continue
				}
				total = r2.Add(total, p.Gravity.Force(a, b))
			}
		}
		forces[i] = total
	}
}
