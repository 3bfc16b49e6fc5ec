package engine

import (
	"image/color"
	"math"

	"golang.org/x/sync/errgroup"

	"gridcaster/level"
)

var (
	SkyColor    = color.RGBA{69, 250, 254, 255}
	GroundColor = color.RGBA{50, 50, 50, 255}
)

// Column is the wall slice for one screen column.
type Column struct {
	X, Y, Height int

	// source rectangle inside the wall texture atlas (or the flat colour when
	// the tile is untextured)
	SrcX, SrcY, SrcH int

	Tile     level.Tile
	Vertical bool
	Distance float64
}

// Color is the flat fill for untextured walls, darkened for vertical hits.
func (c Column) Color() color.RGBA {
	return c.Tile.Shade(c.Vertical)
}

// Projector turns per-column ray hits into wall slices on a virtual screen placed
// ScreenDist units in front of the viewer.
type Projector struct {
	Width, Height int
	// Fov is the horizontal half-angle in radians.
	Fov        float64
	ScreenDist float64
	Depth      int

	// Perspective spaces column rays by atan of the screen offset instead of
	// sweeping the angle linearly.
	Perspective bool

	// Workers > 1 splits the wall pass across goroutines.
	Workers int
}

func NewProjector(width, height int, fov float64, depth int) *Projector {
	p := &Projector{
		Height:  height,
		Fov:     fov,
		Depth:   depth,
		Workers: 1,
	}
	p.SetViewSize(width, height)
	return p
}

func (p *Projector) SetViewSize(width, height int) {
	p.Width = width
	p.Height = height
	p.ScreenDist = float64(width) / (2 * math.Tan(p.Fov))
}

func (p *Projector) SetFov(fov float64) {
	p.Fov = fov
	p.SetViewSize(p.Width, p.Height)
}

// ColumnAngle is the ray angle for screen column i. Column 0 is the left edge and
// carries the largest angle.
func (p *Projector) ColumnAngle(i int, view float64) float64 {
	if p.Perspective {
		off := float64(p.Width>>1 - i)
		return NormalizeAngle(view + WrapToSigned(QuadrantAtan(p.ScreenDist, off)))
	}
	return NormalizeAngle(view + p.Fov - float64(i)*2*p.Fov/float64(p.Width))
}

// Render casts one ray per screen column from (x, y) looking along view and
// returns the visible wall slices in column order.
func (p *Projector) Render(g *level.Grid, x, y, view float64) []Column {
	slots := make([]Column, p.Width)
	ok := make([]bool, p.Width)

	castRange := func(from, to int) {
		for i := from; i < to; i++ {
			slots[i], ok[i] = p.column(g, x, y, view, i)
		}
	}

	workers := p.Workers
	if workers <= 1 || p.Width < workers {
		castRange(0, p.Width)
	} else {
		var eg errgroup.Group
		eg.SetLimit(workers)
		chunk := (p.Width + workers - 1) / workers
		for from := 0; from < p.Width; from += chunk {
			from, to := from, min(from+chunk, p.Width)
			eg.Go(func() error {
				castRange(from, to)
				return nil
			})
		}
		_ = eg.Wait()
	}

	columns := make([]Column, 0, p.Width)
	for i := range slots {
		if ok[i] {
			columns = append(columns, slots[i])
		}
	}
	return columns
}

func (p *Projector) column(g *level.Grid, x, y, view float64, i int) (Column, bool) {
	rAng := p.ColumnAngle(i, view)
	hit := Cast(g, x, y, rAng, p.Depth)
	if !hit.Hit {
		return Column{}, false
	}
	tile, _ := hit.Segment(g)

	// removing fish eye effect
	dist := hit.Distance * math.Cos(rAng-view)
	if dist == 0 {
		return Column{}, false
	}

	height, offY := p.SliceHeight(dist)
	c := Column{
		X:        i,
		Y:        (p.Height - int(height)) >> 1,
		Height:   int(height),
		SrcX:     hit.Offset,
		SrcY:     offY,
		SrcH:     level.TileSize - 2*offY,
		Tile:     tile,
		Vertical: hit.Vertical,
		Distance: dist,
	}
	if tile.Textured() {
		c.SrcX += tile.TextureIndex * level.TileSize
	}
	return c, true
}

// SliceHeight projects a corrected distance to an on-screen height capped at the
// viewport, plus the symmetric texture crop needed when the slice was capped.
func (p *Projector) SliceHeight(dist float64) (float64, int) {
	height := level.TileSize * p.ScreenDist / dist
	offY := 0
	if height > float64(p.Height) {
		offY = int((height - float64(p.Height)) * level.TileSize / (2 * height))
		height = float64(p.Height)
	}
	return height, offY
}
