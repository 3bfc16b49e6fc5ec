package engine

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"gridcaster/level"
	"gridcaster/logger"
	"gridcaster/model"
)

type State int

const (
	State_Running State = iota
	State_Paused
	State_Won
	State_Lost
)

func (s State) String() string {
	switch s {
	case State_Running:
		return "running"
	case State_Paused:
		return "paused"
	case State_Won:
		return "won"
	case State_Lost:
		return "lost"
	}
	return "unknown"
}

// Intent is one frame of player movement. DX is forward and DY is to the right
// when FrameRelative is set, otherwise both are world axes.
type Intent struct {
	DX, DY        float64
	DAngle        float64
	FrameRelative bool
	Touch         bool
}

// Controls is the held-key state a front-end collects each frame.
type Controls struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	Boost, Slow             bool
	Touch                   bool
}

// Intent scales held controls by speed (units/s), turn rate (rad/s) and dt.
// Boost doubles both rates, Slow halves them.
func (c Controls) Intent(speed, turn, dt float64) Intent {
	if c.Boost {
		speed *= 2
		turn *= 2
	}
	if c.Slow {
		speed /= 2
		turn /= 2
	}

	in := Intent{FrameRelative: true, Touch: c.Touch}
	if c.TurnLeft {
		in.DAngle += turn * dt
	}
	if c.TurnRight {
		in.DAngle -= turn * dt
	}
	if c.Forward {
		in.DX += speed * dt
	}
	if c.Back {
		in.DX -= speed * dt
	}
	if c.StrafeRight {
		in.DY += speed * dt
	}
	if c.StrafeLeft {
		in.DY -= speed * dt
	}
	return in
}

// Settings are the gameplay tunables of a session.
type Settings struct {
	PlayerSpeed float64
	PlayerTurn  float64
	PlayerSize  float64
	PlayerAngle float64

	// Agent is the normal agent archetype; fast agents double its speed and
	// start facing FastAngle.
	Agent     model.AgentArchetype
	FastAngle float64

	Sheet SpriteSheet
}

func DefaultSettings() Settings {
	return Settings{
		PlayerSpeed: 240,
		PlayerTurn:  1.5,
		PlayerSize:  10,
		PlayerAngle: NormalizeAngle(7 * math.Pi / 2),
		Agent: model.AgentArchetype{
			Angle:           NormalizeAngle(7 * math.Pi / 2),
			Size:            10,
			SightRadius:     10,
			Speed:           100,
			AngularVelocity: 1.5,
			Pursuit:         true,
		},
		FastAngle: math.Pi / 2,
		Sheet:     DefaultSpriteSheet,
	}
}

// Frame is everything a front-end needs to draw one frame.
type Frame struct {
	Sky, Ground color.RGBA
	Columns     []Column
	Strips      []SpriteStrip
	Markers     []Marker

	PlayerX, PlayerY float64
	PlayerAngle      float64

	State State
}

// Session owns the entities of one play-through and runs the frame loop:
// exit probe, player input, agent behaviour in entity order, wall pass,
// sprite pass.
type Session struct {
	grid     *level.Grid
	proj     *Projector
	settings Settings

	// entities[0] is the player
	entities []*model.Entity
	deltas   []Delta

	state State

	clock     func() time.Time
	last      time.Time
	skipDelta bool

	log *logrus.Entry
}

func NewSession(g *level.Grid, proj *Projector, settings Settings) (*Session, error) {
	s := &Session{
		grid:     g,
		proj:     proj,
		settings: settings,
		clock:    time.Now,
		log:      logger.Log.WithField("component", "session"),
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart puts the player and every agent back on their spawns.
func (s *Session) Restart() error {
	sp := s.grid.Spawns
	ents := []*model.Entity{
		model.NewPlayer(sp.Player.X, sp.Player.Y, s.settings.PlayerAngle, s.settings.PlayerSize),
	}

	for _, spawn := range sp.Agents {
		arch := s.settings.Agent
		if spawn.Kind == level.SpawnKind_FastAgent {
			arch = arch.DoubleSpeed()
			arch.Angle = s.settings.FastAngle
		}
		a, err := model.NewAgent(spawn.X, spawn.Y, arch)
		if err != nil {
			return fmt.Errorf("engine: spawn agent: %w", err)
		}
		ents = append(ents, a)
	}

	s.entities = ents
	s.deltas = make([]Delta, len(ents))
	s.updateDeltas()
	s.state = State_Running
	s.skipDelta = true

	s.log.WithField("agents", len(ents)-1).Info("session started")
	return nil
}

func (s *Session) State() State              { return s.state }
func (s *Session) Grid() *level.Grid         { return s.grid }
func (s *Session) Projector() *Projector     { return s.proj }
func (s *Session) Entities() []*model.Entity { return s.entities }
func (s *Session) Player() *model.Entity     { return s.entities[0] }

// SetClock replaces the monotonic clock, mostly for tests.
func (s *Session) SetClock(clock func() time.Time) {
	s.clock = clock
}

func (s *Session) Pause() {
	if s.state == State_Running {
		s.state = State_Paused
	}
}

// Resume continues a paused session. The next Tick sees a zero delta so the
// time spent paused is not simulated.
func (s *Session) Resume() {
	if s.state == State_Paused {
		s.state = State_Running
		s.skipDelta = true
	}
}

func (s *Session) TogglePause() {
	if s.state == State_Paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Tick measures the time since the previous tick and advances one frame.
func (s *Session) Tick(c Controls) Frame {
	now := s.clock()
	dt := now.Sub(s.last).Seconds()
	s.last = now
	if s.skipDelta || dt < 0 {
		dt = 0
		s.skipDelta = false
	}
	return s.Step(c.Intent(s.settings.PlayerSpeed, s.settings.PlayerTurn, dt), dt)
}

// Step advances the world by dt seconds under the given intent and renders.
// Outside the running state only the render happens.
func (s *Session) Step(in Intent, dt float64) Frame {
	if s.state != State_Running {
		return s.Render()
	}

	// the exit is probed from where the player stood when the key was read
	if in.Touch && Touches(s.grid, s.Player()) {
		s.win()
		return s.Render()
	}
	Move(s.grid, s.entities, 0, in.DX, in.DY, in.DAngle, in.FrameRelative)

	s.updateDeltas()
	for i := 1; i < len(s.entities); i++ {
		if UpdateBehavior(s.grid, s.entities, i, s.deltas[i], dt) == Event_Caught {
			s.state = State_Lost
			s.log.WithField("agent", i).Info("player caught")
			break
		}
	}

	return s.Render()
}

// Render draws the current world without advancing it.
func (s *Session) Render() Frame {
	p := s.Player()
	return Frame{
		Sky:         SkyColor,
		Ground:      GroundColor,
		Columns:     s.proj.Render(s.grid, p.Position.X, p.Position.Y, p.Angle),
		Strips:      ComposeSprites(s.grid, s.proj, s.entities, s.deltas, s.settings.Sheet),
		Markers:     Markers(s.entities),
		PlayerX:     p.Position.X,
		PlayerY:     p.Position.Y,
		PlayerAngle: p.Angle,
		State:       s.state,
	}
}

func (s *Session) win() {
	s.state = State_Won
	for _, e := range s.entities[1:] {
		e.Agent.ResetToIdle()
	}
	s.log.Info("player reached the exit")
}

func (s *Session) updateDeltas() {
	p := s.Player()
	for i := 1; i < len(s.entities); i++ {
		s.deltas[i] = DeltaTo(s.entities[i], p)
	}
}
