package model

import (
	"image/color"

	"github.com/harbdog/raycaster-go/geom"
)

type Kind int

const (
	Kind_Player Kind = iota
	Kind_Agent
)

// Entity is anything that moves on the grid. Agents carry their extra state in
// Agent; for the player it is nil.
type Entity struct {
	Kind     Kind
	Position *geom.Vector2
	// Angle is the heading in [0, 2π); 0 points along +x, π/2 up the map (-y).
	Angle float64
	// Size is the edge of the bounding square in world units.
	Size     float64
	MapColor color.RGBA

	Agent *AgentState
}

// NewPlayer creates the player entity. The caller passes a normalized angle.
func NewPlayer(x, y, angle, size float64) *Entity {
	p := &Entity{
		Kind:     Kind_Player,
		Position: &geom.Vector2{X: x, Y: y},
		Angle:    angle,
		Size:     size,
		MapColor: color.RGBA{255, 0, 0, 255},
	}

	return p
}

func (e *Entity) Pos() *geom.Vector2 {
	return e.Position
}

func (e *Entity) IsPlayer() bool { return e.Kind == Kind_Player }

// HalfSize is half the bounding square edge.
func (e *Entity) HalfSize() float64 { return e.Size / 2 }
