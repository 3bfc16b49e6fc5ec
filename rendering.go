// rendering.go
package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gridcaster/engine"
)

func (g *Game) drawBackground(screen *ebiten.Image, f engine.Frame) {
	half := float32(g.height / 2)
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), half, f.Sky, false)
	vector.DrawFilledRect(screen, 0, half, float32(g.width), float32(g.height)-half, f.Ground, false)
}

// drawWalls draws one screen column per ray hit: textured tiles sample a one
// pixel wide slice of the atlas, the rest are filled with their flat colour.
func (g *Game) drawWalls(screen *ebiten.Image, cols []engine.Column) {
	for _, c := range cols {
		if !c.Tile.Textured() || c.SrcH <= 0 {
			vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), 1, float32(c.Height), c.Color(), false)
			continue
		}

		atlas := g.textures.wallAtlas(c.Vertical)
		slice := atlas.SubImage(image.Rect(c.SrcX, c.SrcY, c.SrcX+1, c.SrcY+c.SrcH)).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, float64(c.Height)/float64(c.SrcH))
		op.GeoM.Translate(float64(c.X), float64(c.Y))
		screen.DrawImage(slice, op)
	}
}

// drawSprites draws agent strips in the order given, which is farthest first.
func (g *Game) drawSprites(screen *ebiten.Image, strips []engine.SpriteStrip) {
	sheet := g.textures.sheet
	for _, s := range strips {
		top := s.Row * sheet.FrameH
		src := image.Rect(s.SrcX, top, min(s.SrcX+s.SrcW, sheet.FrameW), top+sheet.FrameH)
		if src.Dx() <= 0 {
			continue
		}
		img := g.textures.agentSheet(s.Fast).SubImage(src).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1/float64(src.Dx()), float64(s.DstH)/float64(sheet.FrameH))
		op.GeoM.Translate(float64(s.DstX), float64(s.DstY))
		screen.DrawImage(img, op)
	}
}
