package world

import (
	"log/slog"

	"github.com/olivierh59500/particlelife/matrix"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/rng"
)

// Option customises World construction.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	stream    rng.Stream
	matrix    *matrix.Matrix
	particles []particle.Particle
}

// WithLogger sets the logger used during construction.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStream replaces the seeded generator. The stream is consumed in the
// same order as the default one: matrix first, then particles.
func WithStream(s rng.Stream) Option {
	return func(o *options) { o.stream = s }
}

// WithMatrix uses m instead of a generated matrix. The matrix draws are still
// consumed so initial placement does not depend on this option.
func WithMatrix(m *matrix.Matrix) Option {
	return func(o *options) { o.matrix = m }
}

// WithParticles replaces the generated particles. The slice is copied and
// must hold exactly Config.Particles entries.
func WithParticles(ps []particle.Particle) Option {
	return func(o *options) { o.particles = ps }
}
