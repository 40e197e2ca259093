package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show game list sidebar
	sidebarWidth       = 30 // Width of game list sidebar
	leaderboardSize    = 10
	recentSize         = 20
)

// BoardView selects what the scoreboard table lists.
type BoardView int

const (
	ViewLeaderboard BoardView = iota // Best score per player
	ViewRecent                       // Latest sessions
)

func (v BoardView) String() string {
	if v == ViewRecent {
		return "RECENT GAMES"
	}
	return "LEADERBOARD"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextGame   key.Binding
	PrevGame   key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.ToggleView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.ToggleView, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	player     string // Highlighted player, may be empty
	view       BoardView
	board      []storage.PlayerStats
	recent     []storage.ScoreEntry
	stats      *storage.PlayerStats // Stats of player for the selected game
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model. player, when set, is
// highlighted and summarized under the table.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// createTable creates a table with the columns of the current view.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.view == ViewRecent {
		columns = []table.Column{
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Date", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 14},
			{Title: "Best", Width: 7},
			{Title: "Games", Width: 6},
			{Title: "Level", Width: 6},
		}
	}

	height := m.height - 10 // Title, summary, help and borders
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the rows of the current view for the selected game.
func (m *ScoreboardModel) load() {
	m.board, m.recent, m.stats, m.loadErr = nil, nil, nil, nil
	id := m.gameID()
	if m.store != nil && id != "" {
		if m.view == ViewRecent {
			m.recent, m.loadErr = m.store.RecentSessions(id, recentSize)
		} else {
			m.board, m.loadErr = m.store.Leaderboard(id, leaderboardSize)
		}
		if m.loadErr == nil && m.player != "" {
			m.stats, m.loadErr = m.store.PlayerStats(id, m.player)
		}
	}
	m.updateTableRows()
}

// updateTableRows refills the table from the loaded rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.view == ViewRecent {
		for _, e := range m.recent {
			rows = append(rows, table.Row{
				m.mark(e.Name),
				fmt.Sprintf("%d", e.Score),
				fmt.Sprintf("%d", e.Level),
				e.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	} else {
		for i, p := range m.board {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				m.mark(p.Name),
				fmt.Sprintf("%d", p.HighScore),
				fmt.Sprintf("%d", p.TotalGames),
				fmt.Sprintf("%d", p.HighestLevel),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// mark flags the highlighted player's rows.
func (m ScoreboardModel) mark(name string) string {
	if m.player != "" && name == m.player {
		return "* " + name
	}
	return name
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == ViewLeaderboard {
				m.view = ViewRecent
			} else {
				m.view = ViewLeaderboard
			}
			m.table = m.createTable()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := m.view.String()
	if len(m.games) > 0 {
		title = fmt.Sprintf("%s - %s", title, m.games[m.gameCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderTableContent())

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(centerText(panel, m.width))
	}
	b.WriteString("\n")

	if summary := m.renderSummary(); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the game modes.
func (m ScoreboardModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(sidebar.String())
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Leaderboard unavailable.\nScores are not being saved.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// renderSummary describes the highlighted player's record.
func (m ScoreboardModel) renderSummary() string {
	if m.player == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginLeft(2)
	if m.stats == nil {
		return style.Render(fmt.Sprintf("%s has no games here yet.", m.player))
	}
	s := m.stats
	return style.Render(fmt.Sprintf("%s: best %d, %d games, %d points total, level %d, last played %s",
		s.Name, s.HighScore, s.TotalGames, s.TotalScore, s.HighestLevel, s.LastPlayed.Format("Jan 02 15:04")))
}

// IsGoingBack returns true if the user pressed back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
