// Package force defines the radial force law between two particles.
package force

import "math"

// Law is the piecewise force profile. Distances are normalised by the
// interaction radius so the law itself is scale free.
type Law struct {
	Critical float64 // boundary between universal repulsion and the class band, in (0,1)
	Scale    float64 // force scale factor f0
}

// Magnitude returns the signed force for normalised distance r and matrix
// coefficient m. Negative values repel.
//
// Below Critical the particle is pushed away regardless of m, linearly from
// -Scale at r=0 to 0 at r=Critical. Between Critical and 1 the force is a
// triangle in m peaking at r=(1+Critical)/2. At and beyond 1 there is no force.
func (l Law) Magnitude(r, m float64) float64 {
	c := l.Critical
	switch {
	case r < c:
		return (r/c - 1) * l.Scale
	case r < 1:
		// |2r-1-c|/(1-c) rewritten around t so that r=c gives exactly zero
		t := (r - c) / (1 - c)
		return m * (1 - math.Abs(2*t-1)) * l.Scale
	default:
		return 0
	}
}

// Peak is the normalised distance of maximal class-dependent force.
func (l Law) Peak() float64 {
	return (1 + l.Critical) / 2
}
