package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/games/turkeyrun"
	"github.com/vovakirdan/turkeyrun/internal/platform/tui"
	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagName       string
	flagLogFile    string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Turkey Run",
	Long: `Start a game. The mode defaults to the campaign (turkeyrun);
turkeyrun_maze plays generated mazes only.

Controls:
  Arrows/WASD  - Move (the turkey keeps going until you turn or stop)
  Space        - Stop
  Enter        - Start the level
  N            - Next level (after clearing one)
  R            - Restart the level (after it ended)
  P            - Pause
  1            - Win the level (only with debug.cheats in the config)
  Esc/B        - Leave (when paused or finished)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow farmers that speed up with each level, 5 lives
  normal - Farmers start at 30% of their top speed
  hard   - Farmers start at 70% of their top speed, 2 lives
  fixed  - Farmers keep the configured speed

Examples:
  turkeyrun play
  turkeyrun play --difficulty hard --name ada
  turkeyrun play turkeyrun_maze --level 5
  turkeyrun play --config ./my-turkeyrun.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (0 = configured start level)")
	playCmd.Flags().StringVar(&flagName, "name", os.Getenv("USER"), "Name on the leaderboard")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write engine logs to this file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := modeArg(args)

	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal, hard or fixed)\n", flagDifficulty)
			os.Exit(1)
		}
	}
	if flagLevel < 0 {
		fmt.Fprintf(os.Stderr, "Error: --level must not be negative\n")
		os.Exit(1)
	}

	// Logs would corrupt the game screen, so they only go to a file
	logger := log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "turkeyrun",
			Level:           log.DebugLevel,
		})
		turkeyrun.SetLogger(logger)
	}

	turkeyrun.SetConfigPath(flagConfig)
	turkeyrun.SetDifficultyPreset(flagDifficulty)
	turkeyrun.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// A missing database disables the leaderboard, the game still runs
	var saver storage.Saver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		saver = store
		defer store.Close()
	}
	submitter := storage.NewSubmitter(saver, logger, 8)

	opts := tui.Options{
		Player:    flagName,
		Submitter: submitter,
		Logger:    logger,
	}
	if dirs := watchDirs(); flagWatch && len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no config directory to watch, reload disabled")
	} else if flagWatch {
		watcher, watchErr := config.NewWatcher(dirs...)
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: config reload disabled: %v\n", watchErr)
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	runErr := tui.Run(game, cfg, opts)
	submitter.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// watchDirs returns the directories config.Load reads from.
func watchDirs() []string {
	if flagConfig != "" {
		return []string{filepath.Dir(flagConfig)}
	}
	var dirs []string
	for _, dir := range []string{config.UserConfigDir(), "configs"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
