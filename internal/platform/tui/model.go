package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/storage"
)

// Options wires a Model to the services around the game. Every field is
// optional.
type Options struct {
	Player    string             // Leaderboard name
	Submitter *storage.Submitter // Nil disables score saving
	Watcher   *config.Watcher    // Nil disables config reload
	Logger    *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the score of the current ending was submitted
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game, the tick loop and the config watch.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), watchConfig(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game centers itself on every render, so a resize keeps the
		// session.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		m.reload(msg.Path)
		return m, watchConfig(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves once nothing is in play
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Won || m.gameState.Paused) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.submitScore()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// submitScore sends the score once per ending: a game over or the final
// level cleared.
func (m *Model) submitScore() {
	st := m.gameState
	ended := st.GameOver || (st.Won && st.Final)
	if !ended {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if st.Score <= 0 {
		return
	}
	m.opts.Submitter.Submit(storage.Entry{
		GameID: m.game.ID(),
		Name:   m.opts.Player,
		Score:  st.Score,
		Level:  st.Level,
	})
}

func (m Model) reload(path string) {
	r, ok := m.game.(registry.Reloader)
	if !ok {
		return
	}
	if err := r.Reload(); err != nil {
		m.opts.Logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("config reloaded", "path", path)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if c, ok := game.(io.Closer); ok {
		c.Close() //nolint:errcheck // Nothing left to report to
	}
	return err
}
