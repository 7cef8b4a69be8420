// roadrush is a terminal dodge-the-traffic game.
//
// Usage:
//
//	roadrush play            - Play in the terminal
//	roadrush serve           - Start SSH server for remote play
//	roadrush sim             - Run a headless session
//	roadrush runs            - Browse recorded runs
//	roadrush replay <id>     - Re-simulate a recorded run and verify it
//	roadrush config          - Print the effective game config
//
// Global flags:
//
//	--config <path>     - Game config YAML
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.roadrush/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
//
// ROADRUSH_DB and ROADRUSH_LOG_LEVEL, from the environment or a .env file,
// replace the defaults of --db and --log-level.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roadrush",
	Short: "Road Rush - Dodge the traffic in your terminal",
	Long: `Road Rush is a terminal game: steer the car left and right and
avoid the blocks falling down the road. Every run is recorded and can be
replayed later to check it ends the same way.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless session
  runs     - Browse recorded runs
  replay   - Verify a recorded run
  config   - Print the effective game config

Examples:
  roadrush play
  roadrush play --seed 42 --no-sound
  roadrush serve --ssh :2222
  roadrush sim --frames 900 --hold left --dump
  roadrush runs
  roadrush replay 3f2a9c1e-...`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.roadrush/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnv reads an optional .env file and applies environment defaults to
// flags the user did not set.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	flags := cmd.Flags()
	if v := os.Getenv("ROADRUSH_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("ROADRUSH_LOG_LEVEL"); v != "" && !flags.Changed("log-level") {
		flagLogLevel = v
	}

	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return nil
}

// newLogger creates a logger writing to w at the selected level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.roadrush/<name>, falling back to discarding when the
// file cannot be opened. The returned func closes the file.
func fileLogger(name string) (*log.Logger, func()) {
	path := config.UserPath(name)
	if path == "" {
		return newLogger(io.Discard, "roadrush"), func() {}
	}
	if err := os.MkdirAll(config.UserPath(), 0o755); err != nil {
		return newLogger(io.Discard, "roadrush"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, "roadrush"), func() {}
	}
	return newLogger(f, "roadrush"), func() { f.Close() }
}

// loadGameConfig loads the game config. An explicit --config must be valid;
// an invalid user config is logged and skipped.
func loadGameConfig(logger *log.Logger) (config.Config, error) {
	if flagConfig == "" {
		if path := config.UserPath("config.yaml"); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				if _, err := config.Parse(data); err != nil {
					logger.Warn("ignoring invalid user config", "path", path, "error", err)
				}
			}
		}
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "path", flagConfig, "field", fmt.Sprintf("%gx%g", cfg.Field.Width, cfg.Field.Height))
	return cfg, nil
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
