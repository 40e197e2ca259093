package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

const gameID = "turkeyrun"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	sessions := []struct {
		game  string
		name  string
		score int
		level int
	}{
		{gameID, "ada", 100, 1},
		{gameID, "bob", 50, 1},
		{gameID, "ada", 200, 3},
		{"turkeyrun_maze", "cy", 500, 2},
	}
	for _, s := range sessions {
		if _, err := store.SaveScore(s.game, s.name, s.score, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Name != "ada" || scores[0].Level != 3 {
		t.Errorf("top entry = %+v, want ada at level 3", scores[0])
	}
	if scores[0].GameID != gameID {
		t.Errorf("GameID = %q, want %q", scores[0].GameID, gameID)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreAnonymousName(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(gameID, "", 10, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	scores, err := store.TopScores(gameID, 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Name != AnonymousName {
		t.Errorf("scores = %+v, want one %q entry", scores, AnonymousName)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore(gameID, "p", i*10, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(gameID, 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	// Zero limit falls back to ten
	scores, err = store.TopScores(gameID, 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores for default limit, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(gameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	for _, s := range []int{30, 120, 70} {
		if _, err := store.SaveScore(gameID, "ada", s, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	high, err = store.HighScore(gameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("Expected high score 120, got %d", high)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		name         string
		score, level int
	}{
		{"ada", 40, 1},
		{"ada", 90, 2},
		{"bob", 150, 4},
		{"cy", 90, 1},
	} {
		if _, err := store.SaveScore(gameID, s.name, s.score, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	board, err := store.Leaderboard(gameID, 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}

	// One row per player; ties on best score break by name.
	want := []PlayerStats{
		{Name: "bob", HighScore: 150, TotalGames: 1, TotalScore: 150, HighestLevel: 4},
		{Name: "ada", HighScore: 90, TotalGames: 2, TotalScore: 130, HighestLevel: 2},
		{Name: "cy", HighScore: 90, TotalGames: 1, TotalScore: 90, HighestLevel: 1},
	}
	if len(board) != len(want) {
		t.Fatalf("Leaderboard() returned %d rows, want %d", len(board), len(want))
	}
	for i, w := range want {
		got := board[i]
		got.LastPlayed = w.LastPlayed
		if got != w {
			t.Errorf("board[%d] = %+v, want %+v", i, got, w)
		}
		if board[i].LastPlayed.IsZero() {
			t.Errorf("board[%d].LastPlayed was not parsed", i)
		}
	}

	board, err = store.Leaderboard(gameID, 1)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 1 || board[0].Name != "bob" {
		t.Errorf("Leaderboard(limit 1) = %+v, want bob only", board)
	}
}

func TestStorePlayerStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.PlayerStats(gameID, "ada")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats != nil {
		t.Errorf("PlayerStats() for unknown player = %+v, want nil", stats)
	}

	for _, s := range []int{10, 60, 20} {
		if _, err := store.SaveScore(gameID, "ada", s, s/10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err = store.PlayerStats(gameID, "ada")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats == nil {
		t.Fatal("PlayerStats() returned nil for known player")
	}
	if stats.TotalGames != 3 || stats.HighScore != 60 || stats.TotalScore != 90 || stats.HighestLevel != 6 {
		t.Errorf("PlayerStats() = %+v", stats)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveScore(gameID, "ada", i, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	recent, err := store.RecentSessions(gameID, 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(recent))
	}
	for i, want := range []int{5, 4, 3} {
		if recent[i].Score != want {
			t.Errorf("recent[%d].Score = %d, want %d", i, recent[i].Score, want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(gameID, "ada", 100, 1)
	store.SaveScore("other", "ada", 200, 1)

	if err := store.ClearScores(gameID); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(gameID, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	// Other games are untouched
	scores, _ = store.TopScores("other", 10)
	if len(scores) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore(gameID, "ada", 10, 1)
	store.SaveScore(gameID, "bob", 30, 2)

	stats, err = store.GetGameStats(gameID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Players != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

type fakeSaver struct {
	mu      sync.Mutex
	entries []Entry
	err     error
}

func (f *fakeSaver) SaveScore(gameID, name string, score, level int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.entries = append(f.entries, Entry{GameID: gameID, Name: name, Score: score, Level: level})
	return int64(len(f.entries)), nil
}

func TestSubmitterFlushesOnClose(t *testing.T) {
	saver := &fakeSaver{}
	sub := NewSubmitter(saver, nil, 8)

	for i := 1; i <= 3; i++ {
		if !sub.Submit(Entry{GameID: gameID, Name: "ada", Score: i * 10, Level: i}) {
			t.Fatalf("Submit(%d) rejected", i)
		}
	}
	sub.Close()

	if len(saver.entries) != 3 {
		t.Fatalf("saved %d entries, want 3", len(saver.entries))
	}
	if saver.entries[2].Score != 30 || saver.entries[2].Level != 3 {
		t.Errorf("last entry = %+v", saver.entries[2])
	}

	if sub.Submit(Entry{GameID: gameID, Score: 1}) {
		t.Error("Submit() after Close() was accepted")
	}
	sub.Close()
}

func TestSubmitterDisabled(t *testing.T) {
	var nilSub *Submitter
	if nilSub.Submit(Entry{Score: 1}) {
		t.Error("nil Submitter accepted an entry")
	}
	nilSub.Close()

	sub := NewSubmitter(nil, nil, 1)
	defer sub.Close()
	if sub.Submit(Entry{Score: 1}) {
		t.Error("Submitter without saver accepted an entry")
	}
}

func TestSubmitterLogsFailures(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)

	sub := NewSubmitter(saver, logger, 2)
	sub.Submit(Entry{GameID: gameID, Name: "ada", Score: 5})
	sub.Close()

	if len(saver.entries) != 0 {
		t.Errorf("failing saver recorded %d entries", len(saver.entries))
	}
}

func TestSubmitterWithStore(t *testing.T) {
	store := openTestStore(t)
	sub := NewSubmitter(store, nil, 4)
	sub.Submit(Entry{GameID: gameID, Name: "ada", Score: 77, Level: 2})
	sub.Close()

	high, err := store.HighScore(gameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 77 {
		t.Errorf("HighScore() = %d, want 77", high)
	}
}
