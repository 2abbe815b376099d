// Command particlelife-headless runs the simulation without a window, prints
// a summary and optionally records or verifies a run.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/recording"
	"github.com/olivierh59500/particlelife/render"
	"github.com/olivierh59500/particlelife/stats"
	"github.com/olivierh59500/particlelife/world"
)

type options struct {
	steps    int
	dt       float64
	record   string
	verify   string
	snapshot string
	size     int
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	var opts options
	flag.IntVar(&opts.steps, "steps", 600, "number of steps to run")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "timestep fed to every step (clamped by the config)")
	flag.StringVar(&opts.record, "record", "", "write a msgpack recording to this file")
	flag.StringVar(&opts.verify, "verify", "", "replay a recording and check it matches")
	flag.StringVar(&opts.snapshot, "png", "", "write the final frame as PNG")
	flag.IntVar(&opts.size, "size", 512, "PNG edge length in pixels")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if opts.verify != "" {
		if err := verify(opts.verify, logger); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, opts, logger); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, opts options, logger *slog.Logger) (err error) {
	w, err := world.New(cfg, world.WithLogger(logger))
	if err != nil {
		return err
	}

	step := func(dt float64) ([]particle.Snapshot, error) { return w.Step(dt), nil }
	if opts.record != "" {
		rec, finish, rerr := openRecording(opts.record, w)
		if rerr != nil {
			return rerr
		}
		defer func() {
			if ferr := finish(); ferr != nil && err == nil {
				err = ferr
			}
		}()
		step = rec.Step
	}

	var series stats.Series
	var snaps []particle.Snapshot
	for i := 0; i < opts.steps; i++ {
		if snaps, err = step(opts.dt); err != nil {
			return err
		}
		series.Add(stats.Take(w.Particles(), cfg.Classes))
	}
	logger.Info("run finished", "steps", w.Steps(), "time", w.Time())

	if opts.snapshot != "" {
		if err := writePNG(opts.snapshot, opts.size, snaps, cfg.Classes); err != nil {
			return err
		}
		logger.Info("frame written", "path", opts.snapshot)
	}

	fmt.Println(report(w, &series))
	return nil
}

// openRecording starts a buffered recording of w. finish flushes the buffer
// and closes the file; its error must be checked since most frames of a short
// run are still buffered.
func openRecording(path string, w *world.World) (*recording.Recorder, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create recording")
	}
	buf := bufio.NewWriter(f)
	finish := func() error {
		ferr := buf.Flush()
		cerr := f.Close()
		if ferr != nil {
			return errors.Wrap(ferr, "flush recording")
		}
		if cerr != nil {
			return errors.Wrap(cerr, "close recording")
		}
		return nil
	}

	rec, err := recording.NewRecorder(buf, w)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return rec, finish, nil
}

func writePNG(path string, size int, snaps []particle.Snapshot, classes int) error {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	render.Rasterize(img, snaps, render.NewPalette(classes))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(err, "encode png")
	}
	return errors.Wrap(f.Close(), "close png")
}

func verify(path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open recording")
	}
	defer f.Close()

	n, err := recording.Verify(bufio.NewReader(f))
	if err != nil {
		return errors.Wrapf(err, "after %d matching frames", n)
	}
	logger.Info("recording verified", "frames", n)
	return nil
}
