package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding config, scores database, logs and screenshots.
const AppDir = ".roadrush"

// Load loads the Road Rush configuration.
// Search order: customPath -> ~/.roadrush/config.yaml -> ./configs/roadrush.yaml -> embedded default.
// Files are layered over Default(), so a partial file only overrides what it names.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/roadrush.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes a config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Fingerprint identifies the settings that decide how a run plays out, so a
// recorded run can tell whether it is being replayed under the same rules.
// Sprites, colors, audio and input timing do not take part.
func (c Config) Fingerprint() string {
	rules := struct {
		Field      FieldConfig      `yaml:"field"`
		Player     PlayerConfig     `yaml:"player"`
		Obstacles  ObstacleConfig   `yaml:"obstacles"`
		Background BackgroundConfig `yaml:"background"`
		Score      ScoreConfig      `yaml:"score"`
	}{c.Field, c.Player, c.Obstacles, c.Background, c.Score}
	rules.Player.Sprite = ""
	rules.Obstacles.Color = ""
	rules.Background.Tile = ""

	data, err := yaml.Marshal(rules)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// UserPath returns a path inside ~/.roadrush, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
