//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"pathviz/internal/app"
	"pathviz/internal/core"
	"pathviz/internal/layouts"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	envErr := app.LoadDotEnv()
	cfg := app.NewConfig()
	loadErr := cfg.LoadEnv(nil)
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := app.NewLogger(os.Stderr, cfg.Verbose)
	if envErr != nil {
		log.WithError(envErr).Debug(".env file not loaded")
	}
	if loadErr != nil {
		log.Fatal(loadErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	grid, err := core.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		log.Fatal(err)
	}
	if err := layouts.Apply(cfg.Layout, grid, cfg.LayoutConfig()); err != nil {
		log.Fatalf("layout: %v (have %v)", err, layouts.Names())
	}

	game := app.New(grid, cfg, log)

	ebiten.SetWindowTitle("pathviz - A* path finding")
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(cfg.Cols*cfg.CellSize+app.HUDWidth, cfg.Rows*cfg.CellSize)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
