package config

import "flag"

// Flags binds the command line overrides shared by every binary.
type Flags struct {
	fs        *flag.FlagSet
	path      string
	particles int
	classes   int
	seed      int64
	radius    float64
	layout    string
	workers   int
}

// BindFlags registers the flags on fs. Values left unset on the command line
// keep the file or default value.
func BindFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "TOML configuration file")
	fs.IntVar(&f.particles, "particles", d.Particles, "number of particles")
	fs.IntVar(&f.classes, "classes", d.Classes, "number of particle classes")
	fs.Int64Var(&f.seed, "seed", d.Seed, "seed of the initial conditions")
	fs.Float64Var(&f.radius, "radius", d.InteractionRadius, "interaction radius")
	fs.StringVar(&f.layout, "layout", d.ClassLayout, "class layout: random or noise")
	fs.IntVar(&f.workers, "workers", d.Workers, "force accumulation workers")
	return f
}

// Resolve loads the config file, if any, applies explicitly set flags and
// validates the result. Call after fs.Parse.
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()
	if f.path != "" {
		loaded, err := Load(f.path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "particles":
			cfg.Particles = f.particles
		case "classes":
			cfg.Classes = f.classes
		case "seed":
			cfg.Seed = f.seed
		case "radius":
			cfg.InteractionRadius = f.radius
		case "layout":
			cfg.ClassLayout = f.layout
		case "workers":
			cfg.Workers = f.workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
