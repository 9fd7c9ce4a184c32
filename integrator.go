package solarsystem

import "gonum.org/v1/gonum/spatial/r2"

// Integrator advances bodies with a semi-implicit Euler scheme.
type Integrator struct {
	Summer ForceSummer
	forces []r2.Vec // scratch buffer reused across steps
}

// NewIntegrator returns an integrator using the provided summation strategy.
// A nil summer defaults to the pairwise Newtonian summation.
func NewIntegrator(s ForceSummer) *Integrator {
	if s == nil {
		s = Pairwise{Gravity: Newtonian}
	}
	return &Integrator{Summer: s}
}

// Step advances every body by dt seconds and records the new positions in the trails.
// All forces are computed before any body moves. The velocity is updated first and the
// position uses the updated velocity. A zero step is a no-op, trails included.
func (in *Integrator) Step(bodies []*Body, dt float64) {
	if dt == 0 || len(bodies) == 0 {
		return
	}
	if cap(in.forces) < len(bodies) {
		in.forces = make([]r2.Vec, len(bodies))
	}
	forces := in.forces[:len(bodies)]
	in.Summer.Sum(bodies, forces)
	for i, b := range bodies {
		acc := r2.Scale(1/b.mass, forces[i])
		b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, acc))
		b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
		b.Record()
	}
}

// ClearAllTrails empties the trail of every body.
func ClearAllTrails(bodies []*Body) {
	for _, b := range bodies {
		b.ClearTrail()
	}
}
