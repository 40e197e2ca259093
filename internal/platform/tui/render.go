package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turkeyrun/internal/core"
)

// palette maps the maze colors to ANSI colors. Entries left empty render
// unstyled.
var palette = [...]lipgloss.TerminalColor{
	core.ColorRed:           lipgloss.Color("1"),
	core.ColorGreen:         lipgloss.Color("2"),
	core.ColorYellow:        lipgloss.Color("3"),
	core.ColorBlue:          lipgloss.Color("4"),
	core.ColorMagenta:       lipgloss.Color("5"),
	core.ColorCyan:          lipgloss.Color("6"),
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorGray:          lipgloss.Color("245"),
}

var styles = buildStyles()

func buildStyles() []lipgloss.Style {
	out := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		out[i] = lipgloss.NewStyle()
		if c != nil {
			out[i] = out[i].Foreground(c)
		}
	}
	return out
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(styles) {
		return styles[c]
	}
	return styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of equal color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	color := s.GetCell(0, y).Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if color == core.ColorDefault {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(styleFor(color).Render(run.String()))
		}
		run.Reset()
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}
