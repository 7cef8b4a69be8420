package roadrush

import (
	"github.com/vovakirdan/roadrush/internal/core"
)

// Kind tags what an Entity is and selects how it moves and draws.
type Kind int

const (
	KindBackground Kind = iota
	KindPlayer
	KindObstacle
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "Background"
	case KindPlayer:
		return "Player"
	case KindObstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// Entity is anything on the playfield. Speed is horizontal for the player and
// vertical (downward) for obstacles and the background.
type Entity struct {
	Kind Kind
	core.Rect
	Speed float64
	Color core.Color // Obstacle fill
	Image core.Image // Player sprite or background tile
}

// Field holds the bounds entities move within.
type Field struct {
	Width, Height float64
	MinX, MaxX    float64 // Player lane
}

// Advance moves the entity by one frame.
func (e *Entity) Advance(f Field) {
	switch e.Kind {
	case KindBackground:
		e.Y += e.Speed
		if e.Y >= f.Height {
			e.Y = 0
		}
	case KindPlayer:
		e.X = core.ClampF(e.X+e.Speed, f.MinX, f.MaxX)
	case KindObstacle:
		e.Y += e.Speed
	}
}

// Draw issues the entity's drawing calls.
func (e Entity) Draw(s core.Surface, f Field) {
	switch e.Kind {
	case KindBackground:
		// Second copy sits one field above so the wrap is seamless.
		s.DrawImage(e.Image, e.X, e.Y, e.W, e.H)
		if e.Speed >= 0 {
			s.DrawImage(e.Image, e.X, e.Y-f.Height, e.W, e.H)
		}
	case KindPlayer:
		s.DrawImage(e.Image, e.X, e.Y, e.W, e.H)
	case KindObstacle:
		s.FillRect(e.X, e.Y, e.W, e.H, e.Color)
	}
}
