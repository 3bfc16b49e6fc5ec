package config

import (
	"math"

	"gridcaster/engine"
)

// FovRadians is the configured half field of view in radians.
func (c *Config) FovRadians() float64 {
	return c.Render.Fov * math.Pi / 180
}

// Projector builds a projector for a width x height view.
func (c *Config) Projector(width, height int) *engine.Projector {
	p := engine.NewProjector(width, height, c.FovRadians(), c.Render.Depth)
	p.Perspective = c.Render.Perspective
	p.Workers = c.Render.Workers
	return p
}

// Settings overlays the configured tunables on the engine defaults.
func (c *Config) Settings() engine.Settings {
	s := engine.DefaultSettings()
	s.PlayerSpeed = c.Player.Speed
	s.PlayerTurn = c.Player.Turn
	s.PlayerSize = c.Player.Size

	s.Agent.Speed = c.Agent.Speed
	s.Agent.AngularVelocity = c.Agent.Turn
	s.Agent.Size = c.Agent.Size
	s.Agent.SightRadius = c.Agent.Sight
	s.Agent.Pursuit = c.Agent.Pursuit
	return s
}
