package solarsystem

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func mustBody(t *testing.T, c BodyConfig) *Body {
	t.Helper()
	b, err := c.Build()
	if err != nil {
		t.Fatalf("building %s: %s", c.Name, err)
	}
	return b
}

func vectorsEqual(a, b r2.Vec, rel float64) bool {
	return scalar.EqualWithinAbsOrRel(a.X, b.X, 1e-12, rel) && scalar.EqualWithinAbsOrRel(a.Y, b.Y, 1e-12, rel)
}
