// Command particlelife-tui runs the simulation in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/render"
	"github.com/olivierh59500/particlelife/stats"
	"github.com/olivierh59500/particlelife/world"
)

const frameInterval = time.Second / 30

type terminal struct {
	screen tcell.Screen
	world  *world.World
	styles []tcell.Style
	counts []int // particles per terminal cell, reused
	paused bool
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy)")
	flag.Parse()

	if err := run(flags, *logPath); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run(flags *config.Flags, logPath string) error {
	logger := slog.New(slog.DiscardHandler)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "open log")
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}
	w, err := world.New(cfg, world.WithLogger(logger))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()

	t := &terminal{screen: screen, world: w, styles: classStyles(cfg.Classes)}
	t.loop(logger)
	return nil
}

func classStyles(classes int) []tcell.Style {
	pal := render.NewPalette(classes)
	styles := make([]tcell.Style, classes)
	for i := range styles {
		c := pal.Color(i)
		styles[i] = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
			Background(tcell.NewRGBColor(int32(render.Background.R), int32(render.Background.G), int32(render.Background.B)))
	}
	return styles
}

func (t *terminal) loop(logger *slog.Logger) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					logger.Info("quit", "steps", t.world.Steps())
					return
				}
				if ev.Rune() == ' ' {
					t.paused = !t.paused
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			snaps := t.world.Snapshots()
			if !t.paused {
				snaps = t.world.Step(dt)
			}
			t.draw(snaps)
		}
	}
}

// draw plots every particle into its character cell; crowded cells get a
// heavier glyph.
func (t *terminal) draw(snaps []particle.Snapshot) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		return
	}
	if cap(t.counts) < cols*rows {
		t.counts = make([]int, cols*rows)
	}
	t.counts = t.counts[:cols*rows]
	clear(t.counts)

	for _, s := range snaps {
		fx, fy := render.ToScreen(s.Pos, float64(cols), float64(rows))
		x, y := min(int(fx), cols-1), min(int(fy), rows-1)
		if x < 0 || y < 0 {
			continue
		}
		t.counts[y*cols+x]++
		glyph := '·'
		switch n := t.counts[y*cols+x]; {
		case n >= 4:
			glyph = '●'
		case n >= 2:
			glyph = '•'
		}
		t.screen.SetContent(x, y, glyph, nil, t.styles[s.Class])
	}

	sample := stats.Take(t.world.Particles(), len(t.styles))
	status := fmt.Sprintf(" step %d  t=%.2fs  mean speed %.4f  [space] pause  [q] quit",
		t.world.Steps(), t.world.Time(), sample.MeanSpeed)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, rows, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}
