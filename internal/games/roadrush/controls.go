package roadrush

import "github.com/vovakirdan/roadrush/internal/core"

// Steerer is what Controls drives.
type Steerer interface {
	SetPlayerSpeed(v float64)
}

// Controls turns steering key events into player speed changes.
// Releasing either direction stops the car.
type Controls struct {
	target Steerer
	speed  float64
}

// NewControls creates controls that steer at the given speed magnitude.
func NewControls(target Steerer, speed float64) *Controls {
	return &Controls{target: target, speed: speed}
}

// Handle applies one key event.
func (c *Controls) Handle(ev core.KeyEvent) {
	switch ev.Action {
	case core.ActionLeft:
		if ev.Pressed {
			c.target.SetPlayerSpeed(-c.speed)
		} else {
			c.target.SetPlayerSpeed(0)
		}
	case core.ActionRight:
		if ev.Pressed {
			c.target.SetPlayerSpeed(c.speed)
		} else {
			c.target.SetPlayerSpeed(0)
		}
	}
}
