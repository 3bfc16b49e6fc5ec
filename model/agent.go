package model

import (
	"fmt"
	"image/color"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"
)

// AgentArchetype holds the tunables an agent is spawned with.
type AgentArchetype struct {
	Angle           float64
	Size            float64
	SightRadius     int
	Speed           float64
	AngularVelocity float64
	Pursuit         bool
	Fast            bool
}

// DoubleSpeed returns the fast variant of an archetype.
func (a AgentArchetype) DoubleSpeed() AgentArchetype {
	a.Speed *= 2
	a.Fast = true
	return a
}

// AgentState is the per-agent behaviour state.
type AgentState struct {
	SightRadius     int
	Speed           float64
	AngularVelocity float64
	Pursuit         bool
	Fast            bool

	// Seen is the current awareness of the player, EverSeen sticks until an idle reset.
	Seen     bool
	EverSeen bool
}

// NewAgent spawns an agent at (x, y) from an archetype.
func NewAgent(x, y float64, arch AgentArchetype) (*Entity, error) {
	state := &AgentState{}
	if err := copier.Copy(state, &arch); err != nil {
		return nil, fmt.Errorf("model: copy agent archetype: %w", err)
	}

	mapColor := color.RGBA{0, 255, 0, 255}
	if arch.Fast {
		mapColor = color.RGBA{0, 128, 255, 255}
	}

	return &Entity{
		Kind:     Kind_Agent,
		Position: &geom.Vector2{X: x, Y: y},
		Angle:    arch.Angle,
		Size:     arch.Size,
		MapColor: mapColor,
		Agent:    state,
	}, nil
}

// Reset forgets the player after a failed chase; EverSeen is kept.
func (a *AgentState) Reset() {
	a.Seen = false
}

// ResetToIdle returns the agent to its never-seen, non-pursuing state.
func (a *AgentState) ResetToIdle() {
	a.Seen = false
	a.EverSeen = false
	a.Pursuit = false
}

// SetSeen updates awareness and latches EverSeen on the first sighting. It
// reports whether this call made the agent aware for the first time.
func (a *AgentState) SetSeen(seen bool) bool {
	a.Seen = seen
	if seen && !a.EverSeen {
		a.EverSeen = true
		return true
	}
	return false
}
