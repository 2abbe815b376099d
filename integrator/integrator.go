// Package integrator advances particle state by one timestep.
package integrator

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/invariant"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/topology"
)

// Damped is a semi-implicit Euler integrator with exponential velocity decay.
// Velocity halves every HalfLife time units when no force acts.
type Damped struct {
	HalfLife float64
}

// Decay returns the velocity factor applied over dt.
func (d Damped) Decay(dt float64) float64 {
	return math.Exp(-math.Ln2 * dt / d.HalfLife)
}

// Step advances one particle using its accumulated acceleration. dt must
// already be clamped by the caller.
func (d Damped) Step(p *particle.Particle, dt float64) {
	d.advance(p, d.Decay(dt), dt)
}

// StepAll advances every particle, computing the decay factor once.
func (d Damped) StepAll(ps []particle.Particle, dt float64) {
	decay := d.Decay(dt)
	for i := range ps {
		d.advance(&ps[i], decay, dt)
	}
}

func (d Damped) advance(p *particle.Particle, decay, dt float64) {
	p.Vel = r2.Scale(decay, p.Vel)
	p.Vel = r2.Add(p.Vel, r2.Scale(dt, p.Acc))
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
	p.Pos = topology.WrapVec(p.Pos)

	invariant.Check(topology.Contains(p.Pos), "particle left the domain: %v", p.Pos)
}
