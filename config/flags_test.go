package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestFlags_DefaultsWhenUnset(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestFlags_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.toml")
	os.WriteFile(path, []byte("particles = 10\nseed = 9\n"), 0644)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-seed", "4", "-workers", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles != 10 || cfg.Seed != 4 || cfg.Workers != 2 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestFlags_Invalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := BindFlags(fs)
	fs.Parse([]string{"-radius", "0.9"})
	if _, err := f.Resolve(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}
