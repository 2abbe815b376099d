// Package config holds the immutable simulation configuration.
package config

import (
	"bytes"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/grid"
	"github.com/olivierh59500/particlelife/topology"
)

// Class layouts for initial placement.
const (
	LayoutRandom = "random" // class drawn from the seeded stream
	LayoutNoise  = "noise"  // class picked from a seeded Perlin field
)

// ErrInvalid marks every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is read once at startup and never modified afterwards.
type Config struct {
	Particles         int     `toml:"particles"`
	Classes           int     `toml:"classes"`
	Seed              int64   `toml:"seed"`
	InteractionRadius float64 `toml:"interaction_radius"`

	// Matrix entries are divided by Amplification.
	Amplification    float64 `toml:"amplification"`
	ForceScale       float64 `toml:"force_scale"`
	CriticalDistance float64 `toml:"critical_distance"`
	HalfLife         float64 `toml:"half_life"`
	MinDT            float64 `toml:"min_dt"`
	MaxDT            float64 `toml:"max_dt"`

	// Initial positions are quantised to SpawnSteps per unit and scaled into
	// [-SpawnExtent, SpawnExtent).
	SpawnExtent float64 `toml:"spawn_extent"`
	SpawnSteps  int     `toml:"spawn_steps"`
	ClassLayout string  `toml:"class_layout"`
	Mass        float64 `toml:"mass"`

	// Workers > 1 accumulates forces in parallel.
	Workers int `toml:"workers"`
}

// Default returns the reference parameter set.
func Default() Config {
	return Config{
		Particles:         1000,
		Classes:           6,
		Seed:              2,
		InteractionRadius: 0.15,
		Amplification:     2.0,
		ForceScale:        10.0,
		CriticalDistance:  0.3,
		HalfLife:          0.05,
		MinDT:             1e-6,
		MaxDT:             0.05,
		SpawnExtent:       1.0,
		SpawnSteps:        100,
		ClassLayout:       LayoutRandom,
		Mass:              1.0,
		Workers:           1,
	}
}

// Validate rejects every configuration that could not run correctly.
func (c Config) Validate() error {
	switch {
	case c.Particles <= 0:
		return errors.Wrapf(ErrInvalid, "particles must be positive, got %d", c.Particles)
	case c.Classes <= 0:
		return errors.Wrapf(ErrInvalid, "classes must be positive, got %d", c.Classes)
	case c.Seed < 0:
		return errors.Wrapf(ErrInvalid, "seed must not be negative, got %d", c.Seed)
	case !(c.InteractionRadius > 0):
		return errors.Wrapf(ErrInvalid, "interaction radius must be positive, got %v", c.InteractionRadius)
	case grid.CellCount(c.InteractionRadius) < grid.MinCells:
		return errors.Wrapf(ErrInvalid, "interaction radius %v leaves fewer than %d grid cells per axis (max %v)",
			c.InteractionRadius, grid.MinCells, topology.Period/grid.MinCells)
	case !(c.Amplification > 0):
		return errors.Wrapf(ErrInvalid, "amplification must be positive, got %v", c.Amplification)
	case !(c.ForceScale >= 0):
		return errors.Wrapf(ErrInvalid, "force scale must not be negative, got %v", c.ForceScale)
	case !(c.CriticalDistance > 0 && c.CriticalDistance < 1):
		return errors.Wrapf(ErrInvalid, "critical distance must be in (0,1), got %v", c.CriticalDistance)
	case !(c.HalfLife > 0):
		return errors.Wrapf(ErrInvalid, "half life must be positive, got %v", c.HalfLife)
	case !(c.MinDT > 0):
		return errors.Wrapf(ErrInvalid, "min dt must be positive, got %v", c.MinDT)
	case math.IsInf(c.MaxDT, 0) || math.IsNaN(c.MaxDT):
		return errors.Wrapf(ErrInvalid, "max dt must be finite, got %v", c.MaxDT)
	case !(c.MinDT <= c.MaxDT):
		return errors.Wrapf(ErrInvalid, "min dt %v exceeds max dt %v", c.MinDT, c.MaxDT)
	case c.MaxDT > c.HalfLife:
		// longer steps skip whole decay periods and let a single kick carry
		// particles across more than one domain width
		return errors.Wrapf(ErrInvalid, "max dt %v exceeds the velocity half life %v", c.MaxDT, c.HalfLife)
	case !(c.SpawnExtent > 0 && c.SpawnExtent <= topology.HalfExtent):
		return errors.Wrapf(ErrInvalid, "spawn extent must be in (0,%v], got %v", topology.HalfExtent, c.SpawnExtent)
	case c.SpawnSteps <= 0:
		return errors.Wrapf(ErrInvalid, "spawn steps must be positive, got %d", c.SpawnSteps)
	case c.ClassLayout != LayoutRandom && c.ClassLayout != LayoutNoise:
		return errors.Wrapf(ErrInvalid, "unknown class layout %q", c.ClassLayout)
	case !(c.Mass > 0):
		return errors.Wrapf(ErrInvalid, "mass must be positive, got %v", c.Mass)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalid, "workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ClampDT bounds a host frame time to [MinDT, MaxDT]. NaN maps to MinDT.
func (c Config) ClampDT(dt float64) float64 {
	if !(dt >= c.MinDT) {
		return c.MinDT
	}
	if dt > c.MaxDT {
		return c.MaxDT
	}
	return dt
}

// Load decodes a TOML file over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalid, "unknown key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}
