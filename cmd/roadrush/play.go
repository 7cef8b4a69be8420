package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roadrush/internal/assets"
	"github.com/vovakirdan/roadrush/internal/audio"
	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/session"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var (
	flagNoSound  bool
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Road Rush",
	Long: `Start a game in the terminal.

Controls:
  Left/A     - Steer left
  Right/D    - Steer right
  P          - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.roadrush/screenshots
  Q/Ctrl+C   - Quit

Terminals do not report key releases: the car keeps moving while the key
repeats and stops shortly after it is let go.

Examples:
  roadrush play
  roadrush play --seed 42
  roadrush play --no-sound --no-record
  roadrush play --config ./my-roadrush.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable the crash sound")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record runs to the database")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	// The terminal is in alt-screen mode while playing, so log to a file.
	logger, closeLog := fileLogger("roadrush.log")
	defer closeLog()

	cfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player, road := loadSprites(cfg, logger)

	var sound core.Audio = audio.Nop{}
	if !flagNoSound && cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio, logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			sound = sm
			defer sm.Cleanup()
		}
	}

	// Recording is optional: the game still works without a database.
	var saver session.RunSaver
	if !flagNoRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database, not recording", "path", flagDBPath, "error", err)
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		} else {
			saver = store
			defer store.Close()
		}
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Audio:    sound,
		Player:   player,
		Road:     road,
		Saver:    saver,
		Logger:   logger,
		ShotsDir: config.UserPath("screenshots"),
	})
	if runErr != nil {
		logger.Error("game exited", "error", runErr)
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// loadSprites starts loading the car and road sprites. Configured files load
// in the background; the built-in sprites are used when no file is set.
func loadSprites(cfg config.Config, logger *log.Logger) (core.Image, core.Image) {
	loader := assets.NewLoader(logger)
	player := loader.Load(assets.Car, cfg.Player.Sprite, core.ColorBrightYellow)
	road := loader.Load(assets.Road, cfg.Background.Tile, core.ColorGray)
	return player, road
}
