// Package tui runs games in the terminal with Bubble Tea: the fixed-rate
// tick loop, key mapping, screen rendering, the scoreboard and the SSH
// server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turkeyrun/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ConfigChangedMsg reports a changed config file.
type ConfigChangedMsg struct {
	Path string
}

// watchConfig waits for the next watcher event. It returns nil once the
// watcher is closed, which ends the loop.
func watchConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-w.Events
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Path: path}
	}
}
