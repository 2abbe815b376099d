package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/config"
	"github.com/olivierh59500/particlelife/matrix"
	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/render"
	"github.com/olivierh59500/particlelife/stats"
	"github.com/olivierh59500/particlelife/world"
)

const (
	MinZoom     = 1.0 // the whole torus always fills the window
	MaxZoom     = 8.0
	TrailLength = 10 // positions kept per particle in trail mode
)

// Simulation adapts a world to the ebiten game loop.
type Simulation struct {
	Width, Height int
	Paused        bool
	ShowHUD       bool
	ShowTrails    bool
	Zoom          float64
	CamX, CamY    float64 // camera centre in domain units
	PrevMX        float64
	PrevMY        float64
	PresetPath    string

	cfg     config.Config
	world   *world.World
	palette *render.Palette
	snaps   []particle.Snapshot
	trails  *render.Trails
	sample  stats.Sample
	last    time.Time
	log     *slog.Logger
}

// NewSimulation creates the window adapter for cfg.
func NewSimulation(cfg config.Config, width, height int, preset string, logger *slog.Logger) (*Simulation, error) {
	s := &Simulation{
		Width:      width,
		Height:     height,
		ShowHUD:    true,
		Zoom:       1.0,
		PresetPath: preset,
		trails:     render.NewTrails(TrailLength),
		log:        logger,
	}
	if err := s.reset(cfg, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// reset rebuilds the world, optionally with an explicit matrix.
func (s *Simulation) reset(cfg config.Config, m *matrix.Matrix) error {
	opts := []world.Option{world.WithLogger(s.log)}
	if m != nil {
		opts = append(opts, world.WithMatrix(m))
	}
	w, err := world.New(cfg, opts...)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.world = w
	s.palette = render.NewPalette(cfg.Classes)
	s.snaps = w.Snapshots()
	s.trails.Reset()
	s.last = time.Time{}
	return nil
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	s.handleInput()

	now := time.Now()
	dt := s.cfg.MinDT
	if !s.last.IsZero() {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now

	if s.Paused {
		return nil
	}

	// the world clamps dt, so a stalled frame cannot blow up the integration
	s.snaps = s.world.Step(dt)
	if s.ShowTrails {
		s.trails.Push(s.snaps)
	}
	if s.ShowHUD {
		s.sample = stats.Take(s.world.Particles(), s.cfg.Classes)
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)

	w, h := float64(s.Width), float64(s.Height)
	radius := float32(math.Max(render.PixelRadius(w, h)*s.Zoom, 1))

	if s.ShowTrails {
		s.drawTrails(screen)
	}

	// when zoomed in, the periodic copies next to the domain may be visible
	for tx := -1; tx <= 1; tx++ {
		for ty := -1; ty <= 1; ty++ {
			for _, p := range s.snaps {
				sx, sy := s.worldToScreen(p.Pos.X+float64(2*tx), p.Pos.Y+float64(2*ty))
				if sx < -float64(radius) || sx > w+float64(radius) || sy < -float64(radius) || sy > h+float64(radius) {
					continue
				}
				vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, s.palette.Fill(p.Class), true)
			}
		}
	}

	if s.ShowHUD {
		s.drawHUD(screen)
	}
}

// drawTrails strokes each particle's recent path, fading older segments.
func (s *Simulation) drawTrails(screen *ebiten.Image) {
	for tx := -1; tx <= 1; tx++ {
		for ty := -1; ty <= 1; ty++ {
			ox, oy := float64(2*tx), float64(2*ty)
			s.trails.Segments(func(i int, a, b r2.Vec, age float64) {
				ax, ay := s.worldToScreen(a.X+ox, a.Y+oy)
				bx, by := s.worldToScreen(b.X+ox, b.Y+oy)
				if !s.onScreen(ax, ay) && !s.onScreen(bx, by) {
					return
				}
				c := s.palette.Color(s.snaps[i].Class)
				c.A = uint8(40 + 160*age)
				c.R, c.G, c.B = premultiply(c.R, c.A), premultiply(c.G, c.A), premultiply(c.B, c.A)
				vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, true)
			})
		}
	}
}

func premultiply(v, a uint8) uint8 {
	return uint8(uint16(v) * uint16(a) / 255)
}

func (s *Simulation) onScreen(x, y float64) bool {
	return x >= -1 && x <= float64(s.Width)+1 && y >= -1 && y <= float64(s.Height)+1
}

func (s *Simulation) drawHUD(screen *ebiten.Image) {
	status := "running"
	if s.Paused {
		status = "paused"
	}
	lines := []string{
		fmt.Sprintf("seed %d  step %d  t=%.2fs  %s", s.cfg.Seed, s.world.Steps(), s.world.Time(), status),
		fmt.Sprintf("fps %.0f  mean speed %.4f  energy %.4f", ebiten.ActualFPS(), s.sample.MeanSpeed, s.sample.KineticEnergy),
		"space pause  r reseed  t trails  s/l save/load matrix  h hud  esc quit",
	}
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, 8, 16+i*16, color.RGBA{220, 220, 220, 255})
	}
}

// Layout returns the screen size
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.Width, s.Height
}

// handleInput processes keyboard and mouse input
func (s *Simulation) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.ShowTrails = !s.ShowTrails
		s.trails.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ShowHUD = !s.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cfg := s.cfg
		cfg.Seed++
		if err := s.reset(cfg, nil); err != nil {
			s.log.Error("reseed failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := matrix.Save(s.PresetPath, s.world.Matrix()); err != nil {
			s.log.Error("save matrix failed", "err", err)
		} else {
			s.log.Info("matrix saved", "path", s.PresetPath)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.loadPreset()
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	s.Zoom = math.Min(math.Max(s.Zoom+wheelY*0.1, MinZoom), MaxZoom)

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.CamX -= (float64(mx) - s.PrevMX) / (s.Zoom * float64(s.Width) * 0.5)
		s.CamY += (float64(my) - s.PrevMY) / (s.Zoom * float64(s.Height) * 0.5)
	}
	s.PrevMX = float64(mx)
	s.PrevMY = float64(my)
}

func (s *Simulation) loadPreset() {
	m, err := matrix.Load(s.PresetPath)
	if err != nil {
		s.log.Error("load matrix failed", "err", err)
		return
	}
	cfg := s.cfg
	cfg.Classes = m.Classes()
	if err := s.reset(cfg, m); err != nil {
		s.log.Error("apply matrix failed", "err", err)
		return
	}
	s.log.Info("matrix loaded", "path", s.PresetPath, "classes", m.Classes())
}

// worldToScreen maps a domain position through the camera. The camera wraps
// with the torus, so panning never runs out of world.
func (s *Simulation) worldToScreen(x, y float64) (float64, float64) {
	cx, cy := math.Mod(s.CamX, 2), math.Mod(s.CamY, 2)
	w, h := float64(s.Width), float64(s.Height)
	sx := ((x-cx)*s.Zoom*0.5 + 0.5) * w
	sy := (1 - ((y-cy)*s.Zoom*0.5 + 0.5)) * h
	return sx, sy
}
