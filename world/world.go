// Package world owns the particle store and runs the simulation cycle:
// rebuild grid, accumulate forces, integrate.
package world

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/force"
	"github.com/olivierh59500/particlelife/grid"
	"github.com/olivierh59500/particlelife/integrator"
	"github.com/olivierh59500/particlelife/matrix"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/rng"
	"github.com/olivierh59500/particlelife/topology"
)

// World is the simulation. It is not safe for concurrent use; steps must be
// issued one at a time by a single driver.
type World struct {
	cfg        config.Config
	matrix     *matrix.Matrix
	law        force.Law
	integrator integrator.Damped
	grid       *grid.Grid

	particles []particle.Particle
	snaps     []particle.Snapshot
	scratch   [][]int // per-worker candidate buffers

	phase Phase
	steps int
	time  float64
}

// New validates cfg and builds the initial state from the seeded stream.
func New(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	src := o.stream
	if src == nil {
		src = rng.New(cfg.Seed)
	}

	g, err := grid.New(cfg.InteractionRadius)
	if err != nil {
		return nil, errors.Wrap(err, "build grid")
	}

	// generation always runs so the stream position after it is fixed
	m := matrix.Generate(cfg.Classes, cfg.Amplification, src)
	if o.matrix != nil {
		if o.matrix.Classes() != cfg.Classes {
			return nil, errors.Wrapf(config.ErrInvalid, "matrix has %d classes, config has %d",
				o.matrix.Classes(), cfg.Classes)
		}
		m = o.matrix
	}

	ps := spawn(cfg, src)
	if o.particles != nil {
		if err := checkParticles(cfg, o.particles); err != nil {
			return nil, err
		}
		copy(ps, o.particles)
	}

	w := &World{
		cfg:        cfg,
		matrix:     m,
		law:        force.Law{Critical: cfg.CriticalDistance, Scale: cfg.ForceScale},
		integrator: integrator.Damped{HalfLife: cfg.HalfLife},
		grid:       g,
		particles:  ps,
		snaps:      make([]particle.Snapshot, len(ps)),
		scratch:    make([][]int, cfg.Workers),
	}

	o.logger.Info("world created",
		"particles", cfg.Particles,
		"classes", cfg.Classes,
		"seed", cfg.Seed,
		"cells", g.Cells(),
		"cell_side", g.Side(),
		"workers", cfg.Workers,
	)
	return w, nil
}

func checkParticles(cfg config.Config, ps []particle.Particle) error {
	if len(ps) != cfg.Particles {
		return errors.Wrapf(config.ErrInvalid, "got %d particles, config has %d", len(ps), cfg.Particles)
	}
	for i, p := range ps {
		if p.Class < 0 || p.Class >= cfg.Classes {
			return errors.Wrapf(config.ErrInvalid, "particle %d has class %d", i, p.Class)
		}
		if !topology.Contains(p.Pos) {
			return errors.Wrapf(config.ErrInvalid, "particle %d at %v is outside the domain", i, p.Pos)
		}
		if !(p.Mass > 0) {
			return errors.Wrapf(config.ErrInvalid, "particle %d has mass %v", i, p.Mass)
		}
	}
	return nil
}

// Step runs one full cycle with dt clamped to the configured bounds and
// returns the updated snapshots. The returned slice is reused by the next
// call.
func (w *World) Step(dt float64) []particle.Snapshot {
	dt = w.cfg.ClampDT(dt)

	w.phase = PhaseRebuildGrid
	w.grid.Rebuild(w.particles)

	w.phase = PhaseAccumulateForces
	w.accumulate()

	w.phase = PhaseIntegrate
	w.integrator.StepAll(w.particles, dt)

	w.phase = PhaseIdle
	w.steps++
	w.time += dt
	return w.Snapshots()
}

// Snapshots returns the renderer view of the current state. The slice is
// reused by the next call.
func (w *World) Snapshots() []particle.Snapshot {
	for i := range w.particles {
		w.snaps[i] = w.particles[i].Snapshot()
	}
	return w.snaps
}

// Particles exposes the particle store. Callers must not modify it.
func (w *World) Particles() []particle.Particle {
	return w.particles
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.Config {
	return w.cfg
}

// Matrix returns the interaction matrix.
func (w *World) Matrix() *matrix.Matrix {
	return w.matrix
}

// Grid returns the spatial grid as of the last step.
func (w *World) Grid() *grid.Grid {
	return w.grid
}

// Phase returns the current cycle phase. Outside Step it is always PhaseIdle.
func (w *World) Phase() Phase {
	return w.phase
}

// Steps returns the number of completed steps.
func (w *World) Steps() int {
	return w.steps
}

// Time returns the sum of clamped timesteps.
func (w *World) Time() float64 {
	return w.time
}
