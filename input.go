package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/engine"
)

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readControls samples the held movement keys for this frame.
func readControls() engine.Controls {
	return engine.Controls{
		Forward:     anyPressed(ebiten.KeyW, ebiten.KeyUp),
		Back:        anyPressed(ebiten.KeyS, ebiten.KeyDown),
		StrafeLeft:  anyPressed(ebiten.KeyA),
		StrafeRight: anyPressed(ebiten.KeyD),
		TurnLeft:    anyPressed(ebiten.KeyLeft, ebiten.KeyQ),
		TurnRight:   anyPressed(ebiten.KeyRight, ebiten.KeyE),
		Boost:       anyPressed(ebiten.KeySpace),
		Slow:        anyPressed(ebiten.KeyShift),
		Touch:       anyPressed(ebiten.KeyControl, ebiten.KeyF),
	}
}
