package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/games/turkeyrun"
	"github.com/vovakirdan/turkeyrun/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMode   string
	flagServeConfig string
	flagServeDiff   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Turkey Run SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own game; the SSH user name is the name on
the leaderboard, which all users share.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  turkeyrun serve                           # Listen on :23234
  turkeyrun serve --ssh :2222               # Listen on port 2222
  turkeyrun serve --mode turkeyrun_maze     # Serve generated mazes
  turkeyrun serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", turkeyrun.GameID, "Game mode every session plays")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	gameID := modeArg([]string{flagServeMode})

	if _, ok := config.ParsePreset(flagServeDiff); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagServeDiff)
		os.Exit(1)
	}
	// Fail before listening rather than in every session
	if flagServeConfig != "" {
		if _, err := config.LoadFile(flagServeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	turkeyrun.SetConfigPath(flagServeConfig)
	turkeyrun.SetDifficultyPreset(flagServeDiff)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.GameID = gameID
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Turkey Run SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
