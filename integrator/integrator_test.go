package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/particle"
)

func TestDecay_HalvesAtHalfLife(t *testing.T) {
	d := Damped{HalfLife: 0.05}
	if got := d.Decay(0.05); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Decay(halfLife) = %v, expected 0.5", got)
	}
	if got := d.Decay(0); got != 1 {
		t.Errorf("Decay(0) = %v, expected 1", got)
	}
}

func TestStep_DampingOnly(t *testing.T) {
	d := Damped{HalfLife: 0.1}
	p := particle.Particle{Vel: r2.Vec{X: 1, Y: -2}, Mass: 1}
	d.Step(&p, 0.1)

	if math.Abs(p.Vel.X-0.5) > 1e-12 || math.Abs(p.Vel.Y+1) > 1e-12 {
		t.Errorf("Expected velocity (0.5,-1), got %v", p.Vel)
	}
	if math.Abs(p.Pos.X-0.05) > 1e-12 || math.Abs(p.Pos.Y+0.1) > 1e-12 {
		t.Errorf("Expected position (0.05,-0.1), got %v", p.Pos)
	}
}

func TestStep_AccelerationAfterDecay(t *testing.T) {
	d := Damped{HalfLife: 0.02}
	p := particle.Particle{Acc: r2.Vec{X: 10}, Mass: 1}
	d.Step(&p, 0.02)

	// zero velocity decays to zero, then a*dt is added
	if math.Abs(p.Vel.X-0.2) > 1e-12 {
		t.Errorf("Expected vx 0.2, got %v", p.Vel.X)
	}
	if math.Abs(p.Pos.X-0.004) > 1e-12 {
		t.Errorf("Expected x 0.004, got %v", p.Pos.X)
	}
}

func TestStep_WrapsAcrossEdges(t *testing.T) {
	d := Damped{HalfLife: 1e9}
	p := particle.Particle{Pos: r2.Vec{X: 0.99, Y: -0.99}, Vel: r2.Vec{X: 1, Y: -1}}
	d.Step(&p, 0.02)

	if math.Abs(p.Pos.X-(-0.99)) > 1e-9 || math.Abs(p.Pos.Y-0.99) > 1e-9 {
		t.Errorf("Expected wrapped position (-0.99, 0.99), got %v", p.Pos)
	}
}

func TestStepAll_MatchesStep(t *testing.T) {
	d := Damped{HalfLife: 0.05}
	ps := []particle.Particle{
		{Pos: r2.Vec{X: 0.1}, Vel: r2.Vec{Y: 0.3}, Acc: r2.Vec{X: -1}},
		{Pos: r2.Vec{Y: -0.5}, Vel: r2.Vec{X: 0.2}, Acc: r2.Vec{Y: 2}},
	}
	single := append([]particle.Particle(nil), ps...)
	for i := range single {
		d.Step(&single[i], 0.016)
	}
	d.StepAll(ps, 0.016)
	for i := range ps {
		if ps[i] != single[i] {
			t.Errorf("Particle %d: StepAll %+v, Step %+v", i, ps[i], single[i])
		}
	}
}

func TestStep_ZeroStateIsFixedPoint(t *testing.T) {
	d := Damped{HalfLife: 0.05}
	p := particle.Particle{Pos: r2.Vec{X: 0.3, Y: 0.4}, Mass: 1}
	for i := 0; i < 100; i++ {
		d.Step(&p, 0.02)
	}
	if p.Pos.X != 0.3 || p.Pos.Y != 0.4 {
		t.Errorf("Expected particle at rest to stay put, got %v", p.Pos)
	}
}
