package engine

import (
	"image/color"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"gridcaster/level"
	"gridcaster/model"
)

// SheetRows is the number of facing directions in an agent sprite sheet.
const SheetRows = 8

// SpriteSheet describes the frame size of the agent sprite sheets.
type SpriteSheet struct {
	FrameW, FrameH int
}

var DefaultSpriteSheet = SpriteSheet{FrameW: level.TileSize, FrameH: level.TileSize}

// SpriteStrip is one visible vertical strip of an agent billboard.
type SpriteStrip struct {
	// Agent indexes the entity list.
	Agent int
	Fast  bool
	// Row is the sprite sheet row, 0 faces the viewer.
	Row int

	SrcX, SrcW int
	DstX, DstY int
	DstH       int

	Distance float64
}

// Marker places an agent on the top-down map.
type Marker struct {
	Agent int
	X, Y  float64
	Angle float64
	Color color.RGBA
	Fast  bool
	Seen  bool
}

// ComposeSprites projects every agent within the depth of field as a billboard.
// Strips come out farthest agent first and are only emitted where no wall is
// nearer than the agent.
func ComposeSprites(g *level.Grid, p *Projector, ents []*model.Entity, deltas []Delta, sheet SpriteSheet) []SpriteStrip {
	order := make([]int, 0, len(ents))
	dist := make([]float64, 0, len(ents))
	for i := 1; i < len(ents); i++ {
		d := deltas[i].Dist
		if d == 0 || int(d)>>level.TileShift > p.Depth {
			continue
		}
		order = append(order, i)
		dist = append(dist, d)
	}
	combSort(order, dist, len(order))

	var strips []SpriteStrip
	for _, i := range order {
		strips = append(strips, p.billboard(g, ents, i, deltas[i], sheet)...)
	}
	return strips
}

func (p *Projector) billboard(g *level.Grid, ents []*model.Entity, i int, d Delta, sheet SpriteSheet) []SpriteStrip {
	player := ents[0]
	a := ents[i]

	// from the player to the sprite
	spriteAng := QuadrantAtan(-d.DX, -d.DY)
	angDiff := WrapToSigned(NormalizeAngle(spriteAng - player.Angle))
	halfAng := math.Atan(float64(sheet.FrameW>>1) / d.Dist)

	// partially visible sprites are still drawn
	if math.Abs(angDiff)-math.Abs(halfAng) >= p.Fov {
		return nil
	}

	// larger angles sit further left on screen
	pos := float64(p.Width>>1) * (1 - angDiff/p.Fov)

	maxSize := max(p.Width, p.Height)
	sw := min(int(float64(sheet.FrameW)*p.ScreenDist/d.Dist), maxSize)
	sh := min(int(float64(sheet.FrameH)*p.ScreenDist/d.Dist), maxSize)
	if sw < 1 || sh < 1 {
		return nil
	}

	row := SheetRow(a.Angle, spriteAng)
	startAng := NormalizeAngle(spriteAng + halfAng)
	step := 2 * halfAng / float64(sw)

	strips := make([]SpriteStrip, 0, sw)
	for s := 0; s < sw; s++ {
		rAng := NormalizeAngle(startAng - float64(s)*step)
		wall := Cast(g, player.Position.X, player.Position.Y, rAng, p.Depth)
		if wall.Distance <= d.Dist {
			continue
		}
		strips = append(strips, SpriteStrip{
			Agent:    i,
			Fast:     a.Agent != nil && a.Agent.Fast,
			Row:      row,
			SrcX:     sheet.FrameW * s / sw,
			SrcW:     sheet.FrameW/sw + 1,
			DstX:     int(pos) - sw>>1 + s,
			DstY:     (p.Height - sh) >> 1,
			DstH:     sh,
			Distance: d.Dist,
		})
	}
	return strips
}

// SheetRow picks one of eight facing rows from the agent heading relative to the
// direction it is seen from. Row 0 faces the viewer.
func SheetRow(agentAng, spriteAng float64) int {
	rel := NormalizeAngle(agentAng - NormalizeAngle(spriteAng+math.Pi))
	return int(geom.Clamp(math.Floor(rel*4/math.Pi), 0, SheetRows-1))
}

// Markers lists agents for the top-down map. Agents that have never seen the
// player stay hidden.
func Markers(ents []*model.Entity) []Marker {
	var markers []Marker
	for i := 1; i < len(ents); i++ {
		a := ents[i]
		if a.Agent == nil || !a.Agent.EverSeen {
			continue
		}
		markers = append(markers, Marker{
			Agent: i,
			X:     a.Position.X,
			Y:     a.Position.Y,
			Angle: a.Angle,
			Color: a.MapColor,
			Fast:  a.Agent.Fast,
			Seen:  a.Agent.Seen,
		})
	}
	return markers
}

// combSort orders by descending distance, keeping order in step with dist.
func combSort(order []int, dist []float64, amount int) {
	gap := amount
	swapped := false
	for gap > 1 || swapped {
		gap = (gap * 10) / 13
		if gap == 9 || gap == 10 {
			gap = 11
		}
		if gap < 1 {
			gap = 1
		}
		swapped = false
		for i := 0; i < amount-gap; i++ {
			j := i + gap
			if dist[i] < dist[j] {
				dist[i], dist[j] = dist[j], dist[i]
				order[i], order[j] = order[j], order[i]
				swapped = true
			}
		}
	}
}
