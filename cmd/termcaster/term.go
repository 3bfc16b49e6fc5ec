package main

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"gridcaster/config"
	"gridcaster/engine"
	"gridcaster/level"
	"gridcaster/logger"
)

// Terminals report key presses but not releases, so a press holds its control
// for holdFor and auto-repeat keeps it alive.
const (
	holdFor   = 180 * time.Millisecond
	frameTime = 33 * time.Millisecond
)

var (
	agentColor     = color.RGBA{40, 160, 60, 255}
	fastAgentColor = color.RGBA{60, 90, 220, 255}
)

type control int

const (
	control_Forward control = iota
	control_Back
	control_StrafeLeft
	control_StrafeRight
	control_TurnLeft
	control_TurnRight
	control_Boost
	control_Touch
	control_Count
)

var runeControls = map[rune]control{
	'w': control_Forward,
	's': control_Back,
	'a': control_StrafeLeft,
	'd': control_StrafeRight,
	'q': control_TurnLeft,
	'e': control_TurnRight,
	'W': control_Forward,
	'S': control_Back,
	'f': control_Touch,
	' ': control_Touch,
}

var keyControls = map[tcell.Key]control{
	tcell.KeyUp:    control_Forward,
	tcell.KeyDown:  control_Back,
	tcell.KeyLeft:  control_TurnLeft,
	tcell.KeyRight: control_TurnRight,
}

// Term drives a session from a tcell screen.
type Term struct {
	screen  tcell.Screen
	session *engine.Session

	pressed [control_Count]time.Time
	now     func() time.Time

	log *logrus.Entry
}

func NewTerm(screen tcell.Screen, cfg *config.Config, grid *level.Grid) (*Term, error) {
	w, h := screen.Size()
	session, err := engine.NewSession(grid, cfg.Projector(max(w, 1), max(h*2, 1)), cfg.Settings())
	if err != nil {
		return nil, err
	}
	return &Term{
		screen:  screen,
		session: session,
		now:     time.Now,
		log:     logger.Log.WithField("component", "termcaster"),
	}, nil
}

func (t *Term) Run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.draw(t.session.Tick(t.controls()))
		}
	}
}

// handleEvent reports false when the program should exit.
func (t *Term) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if c, ok := keyControls[ev.Key()]; ok {
			t.press(c, ev.Modifiers())
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch r := ev.Rune(); r {
		case 'p', 'P':
			t.session.TogglePause()
		case 'r', 'R':
			switch t.session.State() {
			case engine.State_Won, engine.State_Lost:
				if err := t.session.Restart(); err != nil {
					t.log.WithError(err).Error("restart failed")
				}
			}
		default:
			if c, ok := runeControls[r]; ok {
				t.press(c, ev.Modifiers())
			}
		}

	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.session.Projector().SetViewSize(max(w, 1), max(h*2, 1))
		t.screen.Sync()
	}
	return true
}

func (t *Term) press(c control, mod tcell.ModMask) {
	now := t.now()
	t.pressed[c] = now
	if mod&tcell.ModShift != 0 {
		t.pressed[control_Boost] = now
	}
}

func (t *Term) held(c control) bool {
	p := t.pressed[c]
	return !p.IsZero() && t.now().Sub(p) < holdFor
}

func (t *Term) controls() engine.Controls {
	return engine.Controls{
		Forward:     t.held(control_Forward),
		Back:        t.held(control_Back),
		StrafeLeft:  t.held(control_StrafeLeft),
		StrafeRight: t.held(control_StrafeRight),
		TurnLeft:    t.held(control_TurnLeft),
		TurnRight:   t.held(control_TurnRight),
		Boost:       t.held(control_Boost),
		Touch:       t.held(control_Touch),
	}
}

// rasterize paints a frame into a w x h pixel buffer, row major.
func rasterize(f engine.Frame, w, h int) []color.RGBA {
	px := make([]color.RGBA, w*h)
	for y := 0; y < h; y++ {
		c := f.Sky
		if y >= h/2 {
			c = f.Ground
		}
		for x := 0; x < w; x++ {
			px[y*w+x] = c
		}
	}

	fillColumn := func(x, top, height int, c color.RGBA) {
		if x < 0 || x >= w {
			return
		}
		for y := max(top, 0); y < min(top+height, h); y++ {
			px[y*w+x] = c
		}
	}
	for _, c := range f.Columns {
		fillColumn(c.X, c.Y, c.Height, c.Color())
	}
	for _, s := range f.Strips {
		c := agentColor
		if s.Fast {
			c = fastAgentColor
		}
		// leave a gap above and below so agents read as figures against walls
		pad := s.DstH / 8
		fillColumn(s.DstX, s.DstY+pad, s.DstH-2*pad, c)
	}
	return px
}

func style(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}

// draw packs two pixel rows into each cell with an upper half block.
func (t *Term) draw(f engine.Frame) {
	w, rows := t.screen.Size()
	h := rows * 2
	px := rasterize(f, w, h)

	for row := 0; row < rows; row++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, row, '▀', nil, style(px[2*row*w+x], px[(2*row+1)*w+x]))
		}
	}
	t.drawStatus(f.State, w)
	t.screen.Show()
}

func (t *Term) drawStatus(s engine.State, w int) {
	var msg string
	switch s {
	case engine.State_Paused:
		msg = " PAUSED - p to resume "
	case engine.State_Won:
		msg = " YOU ESCAPED - r to play again "
	case engine.State_Lost:
		msg = " CAUGHT - r to try again "
	default:
		return
	}
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x0 := max((w-len(msg))/2, 0)
	for i, r := range msg {
		t.screen.SetContent(x0+i, 0, r, nil, st)
	}
}
