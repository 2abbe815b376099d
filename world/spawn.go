package world

import (
	"math"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/rng"
)

// Perlin parameters for the noise class layout.
const (
	noiseAlpha     = 2.0
	noiseBeta      = 2.0
	noiseOctaves   = 3
	noiseFrequency = 1.5
)

// spawn places cfg.Particles particles. Each particle consumes three draws:
// x, y, class.
func spawn(cfg config.Config, src rng.Stream) []particle.Particle {
	var field *perlin.Perlin
	if cfg.ClassLayout == config.LayoutNoise {
		field = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, cfg.Seed)
	}

	ps := make([]particle.Particle, cfg.Particles)
	for i := range ps {
		x := spawnCoord(src.Next(), cfg)
		y := spawnCoord(src.Next(), cfg)
		class := int(math.Floor(src.Next() * float64(cfg.Classes)))
		if field != nil {
			class = noiseClass(field, x, y, cfg.Classes)
		}
		ps[i] = particle.Particle{
			Pos:   r2.Vec{X: x, Y: y},
			Mass:  cfg.Mass,
			Class: class,
		}
	}
	return ps
}

func spawnCoord(u float64, cfg config.Config) float64 {
	steps := float64(cfg.SpawnSteps)
	return (math.Floor(u*2*steps) - steps) / steps * cfg.SpawnExtent
}

func noiseClass(field *perlin.Perlin, x, y float64, classes int) int {
	v := field.Noise2D(x*noiseFrequency, y*noiseFrequency)
	class := int(math.Floor((v*0.5 + 0.5) * float64(classes)))
	return min(max(class, 0), classes-1)
}
