// Package particle defines the particle record stored by the world.
package particle

import "gonum.org/v1/gonum/spatial/r2"

// DefaultMass is the mass given to particles unless configured otherwise.
const DefaultMass = 1.0

// Particle is a plain value owned by the world's particle store. Particles
// never reference each other; the grid refers to them by index.
type Particle struct {
	Pos   r2.Vec
	Vel   r2.Vec
	Acc   r2.Vec // recomputed every step
	Mass  float64
	Class int
}

// Snapshot is the renderer's view of a particle.
type Snapshot struct {
	Pos   r2.Vec
	Class int
}

// Snapshot returns the renderer view of p.
func (p *Particle) Snapshot() Snapshot {
	return Snapshot{Pos: p.Pos, Class: p.Class}
}

// Speed returns |v|.
func (p *Particle) Speed() float64 {
	return r2.Norm(p.Vel)
}
