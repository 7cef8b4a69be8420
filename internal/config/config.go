// Package config provides YAML-based game configuration loading for Road Rush.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables for a Road Rush session.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Background BackgroundConfig `yaml:"background"`
	Score      ScoreConfig      `yaml:"score"`
	Audio      AudioConfig      `yaml:"audio"`
	Input      InputConfig      `yaml:"input"`
}

// FieldConfig defines the playfield size in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player's car.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from field bottom to the car's top edge
	Speed        float64 `yaml:"speed"`         // Magnitude applied while a steering key is held
	LeftMargin   float64 `yaml:"left_margin"`   // Smallest allowed x
	RightMargin  float64 `yaml:"right_margin"`  // Gap kept between the car's right edge and the field edge
	Sprite       string  `yaml:"sprite"`        // Optional sprite file; empty uses the built-in car
}

// ObstacleConfig defines falling obstacles.
type ObstacleConfig struct {
	SpawnEvery int     `yaml:"spawn_every"` // Spawn one obstacle every N frames
	MinWidth   int     `yaml:"min_width"`
	MaxWidth   int     `yaml:"max_width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	Margin     int     `yaml:"margin"` // Horizontal gap kept on both sides of the field
	Color      string  `yaml:"color"`
}

// BackgroundConfig defines the scrolling road.
type BackgroundConfig struct {
	Speed float64 `yaml:"speed"`
	Tile  string  `yaml:"tile"` // Optional tile file; empty uses the built-in road
}

// ScoreConfig defines score accrual.
type ScoreConfig struct {
	FramesPerPoint int `yaml:"frames_per_point"`
}

// AudioConfig defines the crash cue.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`      // Linear gain, 0..1
	CrashSound string  `yaml:"crash_sound"` // Optional WAV file; empty synthesizes a crash
}

// InputConfig defines terminal input handling.
type InputConfig struct {
	// ReleaseAfterMS is how long a steering key may go without auto-repeat
	// before it is treated as released.
	ReleaseAfterMS int `yaml:"release_after_ms"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// PlayerMinX returns the smallest x the player may occupy.
func (c Config) PlayerMinX() float64 {
	return c.Player.LeftMargin
}

// PlayerMaxX returns the largest x the player may occupy.
func (c Config) PlayerMaxX() float64 {
	return c.Field.Width - c.Player.RightMargin - c.Player.Width
}

// Validate checks the invariants the simulation relies on.
func (c Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size must be positive, got %gx%g", ErrInvalid, c.Field.Width, c.Field.Height)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive, got %gx%g", ErrInvalid, c.Player.Width, c.Player.Height)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player speed must not be negative", ErrInvalid)
	case c.PlayerMaxX() < c.PlayerMinX():
		return fmt.Errorf("%w: player lane is empty (min x %g > max x %g)", ErrInvalid, c.PlayerMinX(), c.PlayerMaxX())
	case c.Obstacles.SpawnEvery <= 0:
		return fmt.Errorf("%w: obstacles.spawn_every must be positive", ErrInvalid)
	case c.Obstacles.MinWidth <= 0 || c.Obstacles.MaxWidth < c.Obstacles.MinWidth:
		return fmt.Errorf("%w: obstacle width range [%d,%d] is empty", ErrInvalid, c.Obstacles.MinWidth, c.Obstacles.MaxWidth)
	case c.Obstacles.Height <= 0:
		return fmt.Errorf("%w: obstacle height must be positive", ErrInvalid)
	case float64(2*c.Obstacles.Margin+c.Obstacles.MaxWidth) > c.Field.Width:
		return fmt.Errorf("%w: widest obstacle (%d) plus margins does not fit the field", ErrInvalid, c.Obstacles.MaxWidth)
	case c.Score.FramesPerPoint <= 0:
		return fmt.Errorf("%w: score.frames_per_point must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0,1]", ErrInvalid)
	}
	return nil
}
