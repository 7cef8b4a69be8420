// Package roadrush implements a top-down dodge game: the player's car steers
// left and right across a scrolling road while obstacles fall toward it.
package roadrush

import (
	"fmt"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

// State is the session state.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// HUD layout, in field units of the default 500x700 field.
const (
	scoreX        = 70
	scoreY        = 20
	scoreFontSize = 20
	overFontSize  = 40
)

// Deps are the externally owned resources a game draws and plays through.
type Deps struct {
	Surface     core.Surface
	Audio       core.Audio
	PlayerImage core.Image
	RoadImage   core.Image
}

// Game implements the Road Rush game logic.
type Game struct {
	cfg        config.Config
	field      Field
	surface    core.Surface
	audio      core.Audio
	background Entity
	player     Entity
	obstacles  *ObstacleManager
	frames     int   // Frames simulated since start
	score      int   // floor(frames / FramesPerPoint)
	state      State // Running until the first collision
}

// New creates a game session. cfg must be valid (see config.Validate).
// Nil resources in deps are replaced with no-ops.
func New(cfg config.Config, seed int64, deps Deps) *Game {
	if deps.Surface == nil {
		deps.Surface = nopSurface{}
	}
	if deps.Audio == nil {
		deps.Audio = nopAudio{}
	}

	field := Field{
		Width:  cfg.Field.Width,
		Height: cfg.Field.Height,
		MinX:   cfg.PlayerMinX(),
		MaxX:   cfg.PlayerMaxX(),
	}

	return &Game{
		cfg:     cfg,
		field:   field,
		surface: deps.Surface,
		audio:   deps.Audio,
		background: Entity{
			Kind:  KindBackground,
			Rect:  core.NewRect(0, 0, field.Width, field.Height),
			Speed: cfg.Background.Speed,
			Image: deps.RoadImage,
		},
		player: Entity{
			Kind: KindPlayer,
			Rect: core.NewRect(
				field.Width/2-cfg.Player.Width/2,
				field.Height-cfg.Player.BottomOffset,
				cfg.Player.Width,
				cfg.Player.Height,
			),
			Image: deps.PlayerImage,
		},
		obstacles: NewObstacleManager(seed, cfg.Obstacles, field),
		state:     StateRunning,
	}
}

// Step advances the game by one frame and draws it.
// Once the game is over Step does nothing.
func (g *Game) Step() core.StepResult {
	if g.state == StateGameOver {
		return core.StepResult{State: g.State()}
	}

	s := g.surface
	s.ClearRect(0, 0, g.field.Width, g.field.Height)

	g.background.Advance(g.field)
	g.background.Draw(s, g.field)

	g.player.Advance(g.field)
	g.player.Draw(s, g.field)

	g.obstacles.Update()
	g.obstacles.Draw(s)

	g.frames++
	g.score = g.frames / g.cfg.Score.FramesPerPoint

	// A fresh obstacle is first drawn on the next frame.
	g.obstacles.MaybeSpawn(g.frames)

	g.drawScore()

	if g.obstacles.CheckCollision(g.player.Rect) {
		g.state = StateGameOver
		g.audio.Play(core.CueCrash)
		g.drawGameOver()
		return core.StepResult{State: g.State(), Crashed: true}
	}

	return core.StepResult{State: g.State()}
}

// Render redraws the current frame without advancing the simulation.
func (g *Game) Render() {
	if g.state == StateGameOver {
		g.drawGameOver()
		return
	}

	s := g.surface
	s.ClearRect(0, 0, g.field.Width, g.field.Height)
	g.background.Draw(s, g.field)
	g.player.Draw(s, g.field)
	g.obstacles.Draw(s)
	g.drawScore()
}

func (g *Game) drawScore() {
	g.surface.DrawText(
		fmt.Sprintf("Score %d", g.score),
		scoreX, scoreY,
		core.Font{Size: scoreFontSize},
		core.ColorWhite,
	)
}

// drawGameOver paints the static end screen.
func (g *Game) drawGameOver() {
	s := g.surface
	w, h := g.field.Width, g.field.Height
	font := core.Font{Size: overFontSize, Bold: true}

	s.ClearRect(0, 0, w, h)
	s.FillRect(0, 0, w, h, core.ColorBlack)
	s.DrawText("Game Over!", w/4, h*2/7, font, core.ColorRed)
	s.DrawText(fmt.Sprintf("Your Final Score: %d", g.score), w/6, h*4/7, font, core.ColorWhite)
}

// SetPlayerSpeed sets the player's horizontal speed. Ignored after game over.
func (g *Game) SetPlayerSpeed(v float64) {
	if g.state == StateGameOver {
		return
	}
	g.player.Speed = v
}

// Player returns a copy of the player entity.
func (g *Game) Player() Entity {
	return g.player
}

// Background returns a copy of the background entity.
func (g *Game) Background() Entity {
	return g.background
}

// Obstacles returns the obstacle manager.
func (g *Game) Obstacles() *ObstacleManager {
	return g.obstacles
}

// Field returns the playfield bounds.
func (g *Game) Field() Field {
	return g.field
}

// Frames returns the number of frames simulated so far.
func (g *Game) Frames() int {
	return g.frames
}

// Status returns the state machine's current state.
func (g *Game) Status() State {
	return g.state
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Frames:   g.frames,
		Score:    g.score,
		GameOver: g.state == StateGameOver,
	}
}

type nopSurface struct{}

func (nopSurface) ClearRect(x, y, w, h float64) {}
func (nopSurface) FillRect(x, y, w, h float64, c core.Color) {}
func (nopSurface) DrawImage(img core.Image, x, y, w, h float64) {}
func (nopSurface) DrawText(text string, x, y float64, f core.Font, c core.Color) {}

type nopAudio struct{}

func (nopAudio) Play(core.Cue) {}
