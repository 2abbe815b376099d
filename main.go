package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particlelife/config"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	width := flag.Int("width", 600, "window width")
	height := flag.Int("height", 400, "window height")
	preset := flag.String("preset", "matrix.json", "matrix preset file for save/load")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}

	sim, err := NewSimulation(cfg, *width, *height, *preset, logger)
	if err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Particle Life")
	ebiten.SetTPS(60)

	// Run the game loop
	if err := ebiten.RunGame(sim); err != nil {
		log.Fatal(err)
	}
}
