package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"gridcaster/config"
	"gridcaster/engine"
	"gridcaster/level"
	"gridcaster/logger"
)

// main game object
type Game struct {
	width, height int

	session *engine.Session
	frame   engine.Frame

	textures *Textures
	minimap  *Minimap
	overlay  *Overlay
	showMap  bool

	log *logrus.Entry
}

func NewGame(cfg *config.Config, grid *level.Grid) (*Game, error) {
	settings := cfg.Settings()
	proj := cfg.Projector(cfg.Screen.Width, cfg.Screen.Height)

	session, err := engine.NewSession(grid, proj, settings)
	if err != nil {
		return nil, err
	}

	overlay, err := NewOverlay()
	if err != nil {
		return nil, err
	}

	g := &Game{
		width:    cfg.Screen.Width,
		height:   cfg.Screen.Height,
		session:  session,
		textures: NewTextures(settings.Sheet),
		minimap:  NewMinimap(grid),
		overlay:  overlay,
		showMap:  true,
		log:      logger.Log.WithField("component", "game"),
	}
	g.frame = session.Render()
	return g, nil
}

// Update - Allows the game to run logic such as updating the world, gathering input, and playing audio.
// Update is called every tick (1/60 [s] by default).
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}

	prev := g.frame.State
	g.frame = g.session.Tick(readControls())
	if g.frame.State != prev {
		g.log.WithFields(logrus.Fields{"from": prev, "to": g.frame.State}).Debug("state changed")
	}

	g.overlay.Update(g.frame.State)
	return nil
}

// Draw draws the game screen.
// Draw is called every frame (typically 1/60[s] for 60Hz display).
func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen, g.frame)
	g.drawWalls(screen, g.frame.Columns)
	g.drawSprites(screen, g.frame.Strips)

	if g.showMap {
		g.minimap.Draw(screen, g.frame)
	}
	g.drawUI(screen)
	g.overlay.Draw(screen)
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) restart() {
	if err := g.session.Restart(); err != nil {
		g.log.WithError(err).Error("restart failed")
		return
	}
	g.frame = g.session.Render()
}

// handleInput processes the one-shot keys; held movement keys are read by readControls.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// if p, pause game
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		switch g.session.State() {
		case engine.State_Won, engine.State_Lost:
			g.restart()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showMap = !g.showMap
	}
	return nil
}
