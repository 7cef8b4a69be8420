package config

import (
	_ "embed"
)

//go:embed defaults/roadrush.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/roadrush.yaml.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  500,
			Height: 700,
		},
		Player: PlayerConfig{
			Width:        50,
			Height:       100,
			BottomOffset: 150,
			Speed:        2,
			LeftMargin:   40,
			RightMargin:  50,
		},
		Obstacles: ObstacleConfig{
			SpawnEvery: 90,
			MinWidth:   100,
			MaxWidth:   200,
			Height:     30,
			Speed:      2,
			Margin:     40,
			Color:      "red",
		},
		Background: BackgroundConfig{
			Speed: 2,
		},
		Score: ScoreConfig{
			FramesPerPoint: 10,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.1,
		},
		Input: InputConfig{
			ReleaseAfterMS: 550,
		},
	}
}
