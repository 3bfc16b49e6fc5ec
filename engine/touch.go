package engine

import (
	"math"

	"gridcaster/level"
	"gridcaster/model"
)

// Touches reports whether the tile one body size in front of e is a win wall.
func Touches(g *level.Grid, e *model.Entity) bool {
	sin, cos := math.Sincos(e.Angle)
	col := int(e.Position.X+cos*e.Size) >> level.TileShift
	row := int(e.Position.Y-sin*e.Size) >> level.TileShift

	tile, ok := g.TileAt(row, col)
	return ok && tile.IsWin()
}
