package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"gridcaster/level"
	"gridcaster/logger"
	"gridcaster/model"
)

// Delta is the vector from an agent to the player with y pointing up the map.
// It is derived once per agent per frame and shared by the behaviour and the
// sprite pass.
type Delta struct {
	DX, DY float64
	Dist   float64
}

func DeltaTo(a, player *model.Entity) Delta {
	dx := player.Position.X - a.Position.X
	dy := -(player.Position.Y - a.Position.Y)
	return Delta{DX: dx, DY: dy, Dist: math.Hypot(dx, dy)}
}

// Event is what a behaviour update reports back to the frame loop.
type Event int

const (
	Event_None Event = iota
	// Event_Spotted: the agent saw the player for the first time since its last idle reset.
	Event_Spotted
	// Event_Caught: the agent reached the player.
	Event_Caught
	// Event_GaveUp: the agent got stuck on a wall and forgot the player.
	Event_GaveUp
)

// UpdateBehavior advances entity i by dt seconds. Agents sense and chase the
// player (entity 0); the player itself is driven by input, not here.
func UpdateBehavior(g *level.Grid, ents []*model.Entity, i int, d Delta, dt float64) Event {
	e := ents[i]
	switch e.Kind {
	case model.Kind_Agent:
		ev := Event_None
		if Sense(g, e, d) {
			ev = Event_Spotted
		}
		if chase := Pursue(g, ents, i, d, dt); chase != Event_None {
			ev = chase
		}
		return ev
	default:
		return Event_None
	}
}

// Sense updates the agent's awareness of the player. Within the sight radius a
// ray is cast toward the player and the agent sees them when the nearest wall is
// farther than the player. Beyond four radii the agent forgets. It reports a
// first sighting.
func Sense(g *level.Grid, a *model.Entity, d Delta) bool {
	s := a.Agent
	tileDist := math.Hypot(float64(int(-d.DX)>>level.TileShift), float64(int(d.DY)>>level.TileShift))

	seen := s.Seen
	if tileDist < float64(s.SightRadius) {
		rayAng := QuadrantAtan(d.DX, d.DY)
		wall := Cast(g, a.Position.X, a.Position.Y, rayAng, s.SightRadius)
		seen = seen || wall.Distance > d.Dist
	} else if tileDist > float64(s.SightRadius<<2) {
		seen = false
	}

	first := s.SetSeen(seen)
	if first {
		logger.Log.WithFields(logrus.Fields{
			"component": "behavior",
			"x":         a.Position.X,
			"y":         a.Position.Y,
			"dist":      d.Dist,
		}).Debug("agent spotted player")
	}
	return first
}

// Pursue turns agent i toward the player and steps it forward, sliding along
// walls when one axis is blocked.
func Pursue(g *level.Grid, ents []*model.Entity, i int, d Delta, dt float64) Event {
	a := ents[i]
	s := a.Agent
	if !s.Pursuit || !s.Seen {
		return Event_None
	}

	if d.Dist < a.Size+ents[0].Size {
		logger.Log.WithFields(logrus.Fields{
			"component": "behavior",
			"agent":     i,
		}).Debug("agent caught player")
		return Event_Caught
	}

	angDiff := WrapToSigned(NormalizeAngle(QuadrantAtan(d.DX, d.DY) - a.Angle))
	turn := s.AngularVelocity * dt
	if angDiff <= 0 {
		// player is to the right
		turn = -turn
	}

	step := s.Speed * dt
	moveX := math.Cos(a.Angle) * step
	moveY := -math.Sin(a.Angle) * step

	blocked := false
	switch Move(g, ents, i, moveX, moveY, turn, false) {
	case ClippedX:
		// undo y and slide along the wall, upward when facing up
		a.Position.Y -= moveY
		slide := step
		if a.Angle < math.Pi {
			slide = -step
		}
		blocked = Move(g, ents, i, 0, slide, 0, false) == FullyBlocked
	case ClippedY:
		a.Position.X -= moveX
		slide := step
		if a.Angle > math.Pi/2 && a.Angle < Pi3 {
			slide = -step
		}
		blocked = Move(g, ents, i, slide, 0, 0, false) == FullyBlocked
	case FullyBlocked:
		blocked = true
	}

	if blocked {
		s.Reset()
		logger.Log.WithFields(logrus.Fields{
			"component": "behavior",
			"agent":     i,
		}).Debug("agent stuck, giving up chase")
		return Event_GaveUp
	}
	return Event_None
}
