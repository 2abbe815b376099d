package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/olivierh59500/particlelife/render"
	"github.com/olivierh59500/particlelife/stats"
	"github.com/olivierh59500/particlelife/world"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// report renders the run summary.
func report(w *world.World, series *stats.Series) string {
	cfg := w.Config()
	last := stats.Take(w.Particles(), cfg.Classes)
	mean, std := series.SpeedSpread()

	var s strings.Builder
	s.WriteString(headerStyle.Render("PARTICLE LIFE") + "\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d in %d classes", cfg.Particles, cfg.Classes))
	row("Seed", fmt.Sprintf("%d", cfg.Seed))
	row("Grid", fmt.Sprintf("%d×%d cells of %.3f", w.Grid().Cells(), w.Grid().Cells(), w.Grid().Side()))
	row("Steps", fmt.Sprintf("%d (t=%.3fs)", w.Steps(), w.Time()))
	row("Mean speed", fmt.Sprintf("%.5f ± %.5f", mean, std))
	row("Max speed", fmt.Sprintf("%.5f", last.MaxSpeed))
	row("Energy", fmt.Sprintf("%.5f", last.KineticEnergy))

	pal := render.NewPalette(cfg.Classes)
	var census []string
	for class, n := range last.Census {
		c := pal.Color(class)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
		census = append(census, swatch.Render(fmt.Sprintf("■ %d", n)))
	}
	row("Census", strings.Join(census, "  "))

	if series.Len() > 1 {
		speed := asciigraph.Plot(series.MeanSpeed, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("mean speed"))
		energy := asciigraph.Plot(series.KineticEnergy, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("kinetic energy"))
		s.WriteString(graphStyle.Render(speed) + "\n")
		s.WriteString(graphStyle.Render(energy))
	}
	return boxStyle.Render(s.String())
}
