package engine

import (
	"math"

	"gridcaster/level"
)

// DepthOfField is the default ray-march limit in tiles.
const DepthOfField = 20

// RayResult is the outcome of one axis-family cast.
type RayResult struct {
	// Distance from the origin to the last ray position. +Inf when the ray can
	// never cross this family of grid lines.
	Distance float64
	// Row and Col index the segment array of the family that was cast.
	Row, Col int
	// Offset is the position along the hit segment, 0..TileSize-1.
	Offset int
	Hit    bool
	// Vertical is set for results from the vertical-segment family.
	Vertical bool
}

func degenerate(vertical bool) RayResult {
	return RayResult{Distance: math.Inf(1), Row: -1, Col: -1, Vertical: vertical}
}

// CastHorizontal marches a ray across horizontal grid lines until it meets a solid
// horizontal segment or depth steps are used up.
func CastHorizontal(g *level.Grid, x, y, ang float64, depth int) RayResult {
	tanAng := math.Tan(ang)

	var rayX, rayY, xOffs, yOffs float64
	switch {
	case ang > math.Pi:
		// looking down
		rayY = float64((int(y)>>level.TileShift)<<level.TileShift + level.TileSize)
		rayX = x - (rayY-y)/tanAng
		yOffs = level.TileSize
		xOffs = -yOffs / tanAng
	case ang > 0 && ang < math.Pi:
		// looking up
		rayY = float64((int(y) >> level.TileShift) << level.TileShift)
		rayX = x + (y-rayY)/tanAng
		yOffs = -level.TileSize
		xOffs = -yOffs / tanAng
	default:
		// perfectly left or right never meets a horizontal wall
		return degenerate(false)
	}

	r := march(g.SolidHorizAt, rayX, rayY, xOffs, yOffs, depth)
	r.Distance = math.Hypot(x-r.endX, y-r.endY)
	r.Offset = int(r.endX) & (level.TileSize - 1)
	return r.RayResult
}

// CastVertical marches a ray across vertical grid lines until it meets a solid
// vertical segment or depth steps are used up.
func CastVertical(g *level.Grid, x, y, ang float64, depth int) RayResult {
	tanAng := math.Tan(ang)

	var rayX, rayY, xOffs, yOffs float64
	switch {
	case ang > math.Pi/2 && ang < Pi3:
		// looking left
		rayX = float64((int(x) >> level.TileShift) << level.TileShift)
		rayY = y + (x-rayX)*tanAng
		xOffs = -level.TileSize
		yOffs = -xOffs * tanAng
	case ang < math.Pi/2 || ang > Pi3:
		// looking right
		rayX = float64((int(x)>>level.TileShift)<<level.TileShift + level.TileSize)
		rayY = y - (rayX-x)*tanAng
		xOffs = level.TileSize
		yOffs = -xOffs * tanAng
	default:
		// perfectly up or down never meets a vertical wall
		return degenerate(true)
	}

	r := march(g.SolidVertAt, rayX, rayY, xOffs, yOffs, depth)
	r.Vertical = true
	r.Distance = math.Hypot(x-r.endX, y-r.endY)
	r.Offset = int(r.endY) & (level.TileSize - 1)
	return r.RayResult
}

type marchResult struct {
	RayResult
	endX, endY float64
}

func march(solid func(row, col int) bool, rayX, rayY, xOffs, yOffs float64, depth int) marchResult {
	r := marchResult{RayResult: RayResult{Row: -1, Col: -1}}
	for dof := 0; dof < depth; dof++ {
		col := int(rayX) >> level.TileShift
		row := int(rayY) >> level.TileShift
		r.Row, r.Col = row, col
		if solid(row, col) {
			r.Hit = true
			break
		}
		rayX += xOffs
		rayY += yOffs
	}
	r.endX, r.endY = rayX, rayY
	return r
}

// Nearest picks the closer of two casts. Only a strictly closer horizontal result
// replaces the vertical one.
func Nearest(h, v RayResult) RayResult {
	if v.Distance > h.Distance {
		return h
	}
	return v
}

// Cast runs both families from (x, y) at ang and returns the nearer result.
func Cast(g *level.Grid, x, y, ang float64, depth int) RayResult {
	return Nearest(
		CastHorizontal(g, x, y, ang, depth),
		CastVertical(g, x, y, ang, depth),
	)
}

// Segment returns the material of the segment a result points at.
func (r RayResult) Segment(g *level.Grid) (level.Tile, bool) {
	if r.Vertical {
		return g.VertSegmentAt(r.Row, r.Col)
	}
	return g.HorizSegmentAt(r.Row, r.Col)
}
