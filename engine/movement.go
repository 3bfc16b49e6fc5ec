package engine

import (
	"math"

	"gridcaster/level"
	"gridcaster/model"
)

// Clip reports how much of an attempted move survived collision resolution.
type Clip int

const (
	// Free: the whole displacement was applied.
	Free Clip = iota
	// ClippedX: the x component was rejected, y was applied.
	ClippedX
	// ClippedY: the y component was rejected, x was applied.
	ClippedY
	// FullyBlocked: the entity did not move.
	FullyBlocked
)

func (c Clip) String() string {
	switch c {
	case Free:
		return "free"
	case ClippedX:
		return "clipped-x"
	case ClippedY:
		return "clipped-y"
	case FullyBlocked:
		return "blocked"
	}
	return "unknown"
}

// Move rotates entity i by dAng and then tries to displace it by (dx, dy),
// falling back to y-only and then x-only motion when the full move collides.
// With frameRelative the displacement is forward/right in the entity's own frame.
// Entity 0 is the player and does not collide with other entities.
func Move(g *level.Grid, ents []*model.Entity, i int, dx, dy, dAng float64, frameRelative bool) Clip {
	e := ents[i]
	e.Angle = NormalizeAngle(e.Angle + dAng)

	if frameRelative {
		sin, cos := math.Sincos(e.Angle)
		dx, dy = cos*dx+sin*dy, -sin*dx+cos*dy
	}

	if dx == 0 && dy == 0 {
		return Free
	}

	pos := e.Position
	pos.X += dx
	pos.Y += dy
	if validPosition(g, ents, i) {
		return Free
	}

	// no room to move in x, try to move only y
	pos.X -= dx
	if validPosition(g, ents, i) {
		return ClippedX
	}

	// then only x
	pos.Y -= dy
	pos.X += dx
	if validPosition(g, ents, i) {
		return ClippedY
	}

	pos.X -= dx
	return FullyBlocked
}

// validPosition tests the bounding square of entity i against every tile it
// covers and, for anything but the player, against every other entity.
func validPosition(g *level.Grid, ents []*model.Entity, i int) bool {
	e := ents[i]
	half := int(e.Size) >> 1
	x, y := int(e.Position.X), int(e.Position.Y)

	left, right := (x-half)>>level.TileShift, (x+half)>>level.TileShift
	top, bottom := (y-half)>>level.TileShift, (y+half)>>level.TileShift
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			if g.SolidAt(row, col) {
				return false
			}
		}
	}

	if i == 0 {
		return true
	}
	for j, other := range ents {
		if j == i {
			continue
		}
		if overlaps(e, other) {
			return false
		}
	}
	return true
}

// overlaps is an exact axis-aligned bounding box test.
func overlaps(a, b *model.Entity) bool {
	reach := a.HalfSize() + b.HalfSize()
	dx := math.Abs(a.Position.X - b.Position.X)
	dy := math.Abs(a.Position.Y - b.Position.Y)

	// quick reject for far away pairs
	if dx > 2*reach || dy > 2*reach {
		return false
	}
	return dx < reach && dy < reach
}
