package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/assets"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/games/roadrush"
	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/session"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var (
	flagSimFrames int
	flagSimHold   string
	flagSimDump   bool
	flagSimCols   int
	flagSimRows   int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session",
	Long: `Simulate a session without a terminal UI and print how it ended.

The session runs until the car crashes or --frames frames have passed.
With --hold the car steers in one direction for the whole run. --dump
prints the last frame as text.

Examples:
  roadrush sim --seed 7
  roadrush sim --frames 3000 --hold left
  roadrush sim --frames 91 --dump --cols 60 --rows 40
  roadrush sim --seed 7 --hold right --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 900, "Maximum number of frames to simulate")
	simCmd.Flags().StringVar(&flagSimHold, "hold", "", "Hold a direction for the whole run: left or right")
	simCmd.Flags().BoolVar(&flagSimDump, "dump", false, "Print the last frame")
	simCmd.Flags().IntVar(&flagSimCols, "cols", 50, "Dump width in cells")
	simCmd.Flags().IntVar(&flagSimRows, "rows", 35, "Dump height in cells")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the database")
}

func runSim(_ *cobra.Command, _ []string) {
	if err := sim(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sim() error {
	logger := newLogger(os.Stderr, "roadrush")

	cfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}
	if flagSimFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagSimFrames)
	}

	script, err := holdScript(flagSimHold)
	if err != nil {
		return err
	}

	var (
		deps   roadrush.Deps
		screen *core.Screen
	)
	if flagSimDump {
		screen = core.NewScreen(flagSimCols, flagSimRows)
		// Headless runs finish at once, so wait for sprite files.
		loader := assets.NewLoader(logger)
		player := loader.Load(assets.Car, cfg.Player.Sprite, core.ColorBrightYellow)
		road := loader.Load(assets.Road, cfg.Background.Tile, core.ColorGray)
		loader.Wait()
		deps = roadrush.Deps{
			Surface:     tui.NewCellSurface(screen, cfg.Field.Width, cfg.Field.Height, flagSimCols, flagSimRows),
			PlayerImage: player,
			RoadImage:   road,
		}
	}

	s := session.Simulate(cfg, seed(), flagSimFrames, script, deps)
	st := s.Game.State()
	logger.Debug("simulation finished", "session", s.ID, "frames", st.Frames, "spawned", s.Game.Obstacles().Spawned())

	if screen != nil {
		fmt.Println(screen.String())
	}

	fmt.Printf("Seed:       %d\n", s.Seed)
	fmt.Printf("Frames:     %d\n", st.Frames)
	fmt.Printf("Score:      %d\n", st.Score)
	om := s.Game.Obstacles()
	fmt.Printf("Obstacles:  %d spawned, %d passed, %d on the road\n", om.Spawned(), om.Culled(), om.Len())
	fmt.Printf("Game over:  %t\n", st.GameOver)

	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		rec := s.Recording()
		if err := store.SaveRun(rec); err != nil {
			return err
		}
		fmt.Printf("Recorded:   %s\n", rec.ID)
	}
	return nil
}

// holdScript returns a script pressing dir before the first frame and never
// releasing it. An empty dir returns a nil script.
func holdScript(dir string) (session.Script, error) {
	var action core.Action
	switch dir {
	case "":
		return nil, nil
	case "left":
		action = core.ActionLeft
	case "right":
		action = core.ActionRight
	default:
		return nil, fmt.Errorf("--hold must be left or right, got %q", dir)
	}

	return func(frame int) []core.KeyEvent {
		if frame == 0 {
			return []core.KeyEvent{{Action: action, Pressed: true}}
		}
		return nil
	}, nil
}
