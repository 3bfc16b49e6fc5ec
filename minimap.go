// minimap.go
package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gridcaster/engine"
	"gridcaster/level"
)

const (
	minimapScale  int = 8
	minimapMargin     = 10
)

var (
	minimapFloor      = color.RGBA{20, 20, 20, 220}
	minimapPlayer     = color.RGBA{255, 220, 0, 255}
	minimapAgentTrace = color.RGBA{160, 160, 160, 255}
)

// Minimap is the top-down view: a static image of the grid plus markers for
// the player and every agent that has spotted them.
type Minimap struct {
	static *ebiten.Image
	scale  float64
}

func NewMinimap(g *level.Grid) *Minimap {
	m := &Minimap{
		static: ebiten.NewImage(g.Cols()*minimapScale, g.Rows()*minimapScale),
		scale:  float64(minimapScale) / level.TileSize,
	}
	m.static.Fill(minimapFloor)

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			tile, _ := g.TileAt(row, col)
			if !tile.Solid() {
				continue
			}
			vector.DrawFilledRect(m.static, float32(col*minimapScale), float32(row*minimapScale), float32(minimapScale), float32(minimapScale), tile.Color, false)
		}
	}
	return m
}

func (m *Minimap) Draw(screen *ebiten.Image, f engine.Frame) {
	w := screen.Bounds().Dx()
	ox := float64(w - m.static.Bounds().Dx() - minimapMargin)
	oy := float64(minimapMargin)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(m.static, op)

	for _, mk := range f.Markers {
		c := minimapAgentTrace
		if mk.Seen {
			c = mk.Color
		}
		m.drawArrow(screen, ox, oy, mk.X, mk.Y, mk.Angle, c)
	}
	m.drawArrow(screen, ox, oy, f.PlayerX, f.PlayerY, f.PlayerAngle, minimapPlayer)
}

// drawArrow marks a world position with a dot and a short heading line.
func (m *Minimap) drawArrow(screen *ebiten.Image, ox, oy, x, y, ang float64, c color.RGBA) {
	sx := float32(ox + x*m.scale)
	sy := float32(oy + y*m.scale)
	vector.DrawFilledCircle(screen, sx, sy, 2.5, c, true)

	l := float64(minimapScale)
	ex := sx + float32(math.Cos(ang)*l)
	ey := sy - float32(math.Sin(ang)*l)
	vector.StrokeLine(screen, sx, sy, ex, ey, 1, c, true)
}
