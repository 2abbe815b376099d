// Package topology implements the periodic geometry of the simulation plane:
// the square [-1,1) on each axis, wrapped with period 2.
package topology

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// HalfExtent is the distance from the origin to each edge.
	HalfExtent = 1.0
	// Period is the domain width on each axis.
	Period = 2 * HalfExtent
)

// Delta returns the minimal-image displacement from a to b. For points inside
// the domain both components lie in [-1,1].
func Delta(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: wrapDiff(b.X - a.X), Y: wrapDiff(b.Y - a.Y)}
}

// Distance is the length of Delta(a, b).
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(Delta(a, b))
}

func wrapDiff(d float64) float64 {
	if d > HalfExtent {
		d -= Period
	}
	if d < -HalfExtent {
		d += Period
	}
	return d
}

// Wrap brings a coordinate back into [-1,1). A coordinate that left the
// domain by less than one period gets a single ±2 correction; anything
// further out is reduced modulo the period.
func Wrap(v float64) float64 {
	switch {
	case v >= HalfExtent && v < HalfExtent+Period:
		return v - Period
	case v < -HalfExtent && v >= -HalfExtent-Period:
		return v + Period
	case v >= -HalfExtent && v < HalfExtent:
		return v
	}
	r := math.Mod(v+HalfExtent, Period)
	if r < 0 {
		r += Period
	}
	if r >= Period {
		r = 0
	}
	return r - HalfExtent
}

// WrapVec applies Wrap on both axes.
func WrapVec(p r2.Vec) r2.Vec {
	return r2.Vec{X: Wrap(p.X), Y: Wrap(p.Y)}
}

// Contains reports whether p lies inside the half-open domain.
func Contains(p r2.Vec) bool {
	return p.X >= -HalfExtent && p.X < HalfExtent && p.Y >= -HalfExtent && p.Y < HalfExtent
}
