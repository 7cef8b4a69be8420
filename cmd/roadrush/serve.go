package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/session"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Road Rush SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own session. Runs from every connection are
recorded to the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.roadrush/host_key

Examples:
  roadrush serve                           # Listen on :23234 with auto-generated key
  roadrush serve --ssh :2222               # Listen on port 2222
  roadrush serve --host-key ./my_host_key  # Use specific host key
  roadrush serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	logger := newLogger(os.Stderr, "roadrush-ssh")

	game, err := loadGameConfig(logger)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	var saver session.RunSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, not recording", "path", flagDBPath, "error", err)
	} else {
		saver = store
		defer store.Close()
	}

	player, road := loadSprites(game, logger)
	server, err := tui.NewSSHServer(cfg, game, tui.SSHServerDeps{
		Player: player,
		Road:   road,
		Saver:  saver,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Road Rush SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
