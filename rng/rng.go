// Package rng provides the seeded random stream used to build reproducible
// initial conditions.
package rng

import "math"

// Stream yields reals in [0,1).
type Stream interface {
	Next() float64
}

// Linear congruential parameters of the reference generator.
const (
	lcgM = 2147483648.0 // 2^31
	lcgA = 1103515245.0
	lcgC = 12345.0
)

// largest double below 1
var belowOne = math.Nextafter(1, 0)

// LCG is the reference generator. Its state is kept in a float64 and every
// operation is rounded the way a double-precision implementation rounds it,
// so the same seed yields the same stream everywhere.
type LCG struct {
	state float64
}

// New seeds a generator. Negative seeds are rejected by config validation.
func New(seed int64) *LCG {
	return &LCG{state: math.Mod(float64(seed), lcgM)}
}

// Next advances the generator and returns the new value.
func (g *LCG) Next() float64 {
	// explicit conversion keeps the compiler from fusing into an FMA
	prod := float64(lcgA * g.state)
	g.state = math.Mod(prod+lcgC, lcgM)
	v := g.state / (lcgM - 1)
	if v >= 1 {
		return belowOne
	}
	return v
}

// State returns the raw generator state.
func (g *LCG) State() float64 {
	return g.state
}
