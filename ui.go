// ui.go
package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"gridcaster/engine"
)

func (g *Game) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()), 10, 10)
	ebitenutil.DebugPrintAt(screen, "move with WASD, turn with arrows, space to run, shift to creep", 10, g.height-60)
	ebitenutil.DebugPrintAt(screen, "ctrl to touch the exit, tab for map, P to pause", 10, g.height-40)
	ebitenutil.DebugPrintAt(screen, "ESC to exit", 10, g.height-20)
}

// Overlay is the dimmed full-screen banner shown whenever the session is not
// running.
type Overlay struct {
	ui    *ebitenui.UI
	label *widget.Text
	shown bool
}

func NewOverlay() (*Overlay, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse overlay font: %w", err)
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    32,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	label := widget.NewText(
		widget.TextOpts.Text("", face, color.White),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(color.RGBA{0, 0, 0, 160})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(label)

	return &Overlay{
		ui:    &ebitenui.UI{Container: root},
		label: label,
	}, nil
}

func overlayText(s engine.State) string {
	switch s {
	case engine.State_Paused:
		return "PAUSED\nP to resume"
	case engine.State_Won:
		return "YOU ESCAPED\nR to play again"
	case engine.State_Lost:
		return "CAUGHT\nR to try again"
	}
	return ""
}

func (o *Overlay) Update(s engine.State) {
	text := overlayText(s)
	o.shown = text != ""
	if !o.shown {
		return
	}
	o.label.Label = text
	o.ui.Update()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.shown {
		o.ui.Draw(screen)
	}
}
