package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turkeyrun/internal/platform/tui"
	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/storage"
)

var (
	flagPlayer      string
	flagRecent      bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Display the top 10 players of a game mode, ranked by their best
score. --recent lists the latest 20 games instead, and --player adds that
player's record.

Examples:
  turkeyrun scores
  turkeyrun scores turkeyrun_maze --recent
  turkeyrun scores --player ada
  turkeyrun scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show this player's stats")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List recent games instead of the leaderboard")
	scoresCmd.Flags().BoolVar(&flagInteractive, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := modeArg(args)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagRecent {
		err = printRecent(store, gameID, game.Title())
	} else {
		err = printLeaderboard(store, gameID, game.Title())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if flagPlayer != "" {
		if err := printPlayer(store, gameID, flagPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving player stats: %v\n", err)
			os.Exit(1)
		}
	}
}

func printLeaderboard(store *storage.Store, gameID, title string) error {
	board, err := store.Leaderboard(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard - %s\n\n", title)
	if len(board) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'turkeyrun play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %-5s  %s\n", "Rank", "Player", "Best", "Games", "Level", "Last played")
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %-5s  %s\n", "----", "------", "----", "-----", "-----", "-----------")
	for i, p := range board {
		fmt.Printf("  %-4d  %-16s  %-6d  %-5d  %-5d  %s\n",
			i+1, p.Name, p.HighScore, p.TotalGames, p.HighestLevel, p.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecent(store *storage.Store, gameID, title string) error {
	recent, err := store.RecentSessions(gameID, 20)
	if err != nil {
		return err
	}

	fmt.Printf("Recent games - %s\n\n", title)
	if len(recent) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-5s  %s\n", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-16s  %-6s  %-5s  %s\n", "------", "-----", "-----", "----")
	for _, e := range recent {
		fmt.Printf("  %-16s  %-6d  %-5d  %s\n", e.Name, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printPlayer(store *storage.Store, gameID, name string) error {
	stats, err := store.PlayerStats(gameID, name)
	if err != nil {
		return err
	}

	fmt.Println()
	if stats == nil {
		fmt.Printf("%s has not played %s yet.\n", name, gameID)
		return nil
	}
	fmt.Printf("%s\n", stats.Name)
	fmt.Printf("  High score:    %d\n", stats.HighScore)
	fmt.Printf("  Games played:  %d\n", stats.TotalGames)
	fmt.Printf("  Total score:   %d\n", stats.TotalScore)
	fmt.Printf("  Highest level: %d\n", stats.HighestLevel)
	fmt.Printf("  Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
