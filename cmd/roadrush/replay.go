package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/session"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify a recorded run",
	Long: `Re-simulate a recorded run from its seed and inputs and check that it
ends after the same number of frames with the same outcome.

The run must be replayed with the config it was played with.

Examples:
  roadrush replay 3f2a9c1e-8d7b-4c55-9a0e-1b2c3d4e5f60
  roadrush replay 3f2a9c1e-8d7b-4c55-9a0e-1b2c3d4e5f60 --config ./my-roadrush.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	if err := replay(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, storage.ErrRunNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'roadrush runs' to see recorded runs.")
		}
		if errors.Is(err, session.ErrConfigChanged) {
			fmt.Fprintln(os.Stderr, "Pass the config the run was played with via --config.")
		}
		os.Exit(1)
	}
}

func replay(id string) error {
	logger := newLogger(os.Stderr, "roadrush")

	cfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Run(id)
	if err != nil {
		return err
	}

	logger.Debug("replaying run", "run", rec.ID, "seed", rec.Seed, "inputs", len(rec.Inputs))
	st, err := session.Replay(cfg, rec)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s verified: %d frames, score %d, game over %t\n",
		rec.ID, st.Frames, st.Score, st.GameOver)
	return nil
}
