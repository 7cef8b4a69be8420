package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List recorded runs, most recent first.

In a terminal this opens an interactive browser where a run can be
replayed to verify it (enter/v) or deleted (x). When the output is not
a terminal, or with --plain, a table is printed instead.

Examples:
  roadrush runs
  roadrush runs --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a table instead of the browser")
}

func runRuns(_ *cobra.Command, _ []string) {
	if err := runs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runs() error {
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

	fd := int(os.Stdout.Fd())
	if !flagRunsPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunRunsBrowser(store, cfg, width, height)
	}

	list, err := store.Runs(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'roadrush play' to record the first run!")
		return nil
	}

	fmt.Printf("  %-36s  %-16s  %-20s  %-7s  %-6s  %-6s  %s\n",
		"ID", "Played", "Seed", "Frames", "Score", "Inputs", "End")
	fmt.Printf("  %-36s  %-16s  %-20s  %-7s  %-6s  %-6s  %s\n",
		"--", "------", "----", "------", "-----", "------", "---")

	for _, r := range list {
		end := "quit"
		if r.GameOver {
			end = "crash"
		}
		fmt.Printf("  %-36s  %-16s  %-20d  %-7d  %-6d  %-6d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Seed,
			r.Frames, r.Frames/cfg.Score.FramesPerPoint, r.Inputs, end)
	}
	return nil
}
