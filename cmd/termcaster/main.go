// Command termcaster runs the ray caster in a terminal, two pixels per cell.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

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

	// the screen owns stdout, logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if path := os.Getenv("GRIDCASTER_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to open log file")
		}
		defer f.Close()
		logOut = f
	}
	logger.SetOutput(logOut)

	grid, err := loadGrid(cfg.Map.Path)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load map")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to create screen")
	}
	if err := screen.Init(); err != nil {
		logger.Log.WithError(err).Fatal("failed to init screen")
	}
	defer screen.Fini()

	t, err := NewTerm(screen, cfg, grid)
	if err != nil {
		screen.Fini()
		logger.Log.WithError(err).Fatal("failed to start session")
	}
	t.Run()
}

func loadGrid(path string) (*level.Grid, error) {
	if path == "" {
		return level.Load(assets.FS, assets.DefaultLevel)
	}
	return level.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
