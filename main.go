// main.go
package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/assets"
	"gridcaster/config"
	"gridcaster/level"
	"gridcaster/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	grid, err := loadGrid(cfg.Map.Path)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load map")
	}

	g, err := NewGame(cfg, grid)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start game")
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("gridcaster")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.WithError(err).Fatal("game loop failed")
	}
}

// loadGrid reads the configured map, or the embedded level when path is empty.
func loadGrid(path string) (*level.Grid, error) {
	if path == "" {
		return level.Load(assets.FS, assets.DefaultLevel)
	}
	return level.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
