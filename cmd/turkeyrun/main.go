// turkeyrun is a maze-chase arcade game for the terminal: a turkey eats
// corn while farmers chase it, and power corn turns the chase around.
//
// Usage:
//
//	turkeyrun list               - List game modes
//	turkeyrun play [mode]        - Play (default mode: turkeyrun)
//	turkeyrun scores [mode]      - Show the leaderboard
//	turkeyrun generate           - Print a generated maze
//	turkeyrun serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible mazes
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turkeyrun/internal/games/turkeyrun"
	"github.com/vovakirdan/turkeyrun/internal/registry"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turkeyrun",
	Short: "Turkey Run - a maze chase in your terminal",
	Long: `Turkey Run is a terminal maze-chase game. Guide the turkey through
the maze, eat every piece of corn and keep away from the farmers.
Power corn scares the farmers for a while: catch one for bonus points.

Available commands:
  list      - Show the game modes
  play      - Play a game mode
  scores    - View the leaderboard
  generate  - Print a generated maze
  serve     - Start SSH server for remote play

Examples:
  turkeyrun play
  turkeyrun play turkeyrun_maze --difficulty hard
  turkeyrun scores --player ada
  turkeyrun generate --width 31 --height 15 --seed 42
  turkeyrun serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}

// modeArg returns the game mode named by args, defaulting to the
// campaign, and exits on an unknown one.
func modeArg(args []string) string {
	gameID := turkeyrun.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'turkeyrun list' to see available modes.")
		os.Exit(1)
	}
	return gameID
}
