package turkeyrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/maze"
	"github.com/vovakirdan/turkeyrun/internal/sim"
)

// A maze cell is drawn two characters wide so the board keeps roughly
// square cells in a terminal.
const (
	cellW     = 2
	hudHeight = 2
)

// board maps engine pixels onto screen cells.
type board struct {
	x, y   int // Top-left of the maze on screen
	layout maze.Layout
}

// project returns the screen cell of a pixel position.
func (b board) project(v core.Vec) (int, int) {
	if b.layout.Tile <= 0 {
		return b.x, b.y
	}
	cx := (v.X - b.layout.OffsetX) / b.layout.Tile
	cy := (v.Y - b.layout.OffsetY) / b.layout.Tile
	return b.x + int(math.Floor(cx*cellW)), b.y + int(math.Floor(cy))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderHUD(dst, nil)
		g.renderOverlay(dst, "Cannot start Turkey Run", truncate(g.err.Error(), dst.Width()-6))
		return
	}
	if g.eng == nil {
		return
	}

	snap := g.eng.Snapshot()
	g.renderHUD(dst, &snap)

	if snap.Grid == nil {
		return
	}
	needW, needH := snap.Grid.Width()*cellW, snap.Grid.Height()+hudHeight+1
	if dst.Width() < needW || dst.Height() < needH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	b := board{
		x:      (dst.Width() - needW) / 2,
		y:      hudHeight,
		layout: snap.Layout,
	}
	renderMaze(dst, b, snap.Grid)
	renderEntities(dst, b, snap.Entities)

	if g.bannerTicks > 0 && g.banner != "" {
		dst.DrawTextCentered(b.y+snap.Grid.Height(), g.banner, core.ColorBrightYellow)
	}

	g.renderPhase(dst, snap)
}

// renderHUD draws the status line and the separator under it.
func (g *Game) renderHUD(dst *core.Screen, snap *sim.Snapshot) {
	hud := " " + g.Title()
	if snap != nil {
		st := snap.State
		hud += fmt.Sprintf(" - Level %d", st.Level)
		if snap.LevelName != "" {
			hud += " " + snap.LevelName
		}
		hud += fmt.Sprintf("  Score: %d  Lives: %s  Corn: %d/%d",
			st.Score, strings.Repeat("♥", max(st.Lives, 0)), st.PickupsRemaining, st.TotalPickups)
	}
	dst.DrawText(0, 0, hud, core.ColorWhite)

	if snap != nil && snap.State.PowerActive {
		power := fmt.Sprintf("POWER %.1fs ", snap.PowerRemaining.Seconds())
		dst.DrawText(dst.Width()-len(power), 0, power, core.ColorBrightMagenta)
	}

	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

func renderMaze(dst *core.Screen, b board, grid *maze.Grid) {
	grid.Cells(func(p maze.Point, k maze.CellKind) {
		if k != maze.Wall {
			return
		}
		x, y := b.x+p.X*cellW, b.y+p.Y
		for i := range cellW {
			dst.SetColor(x+i, y, '█', core.ColorBlue)
		}
	})
}

// renderEntities draws items under pursuers under the player.
func renderEntities(dst *core.Screen, b board, views []sim.EntityView) {
	for _, kind := range []entity.Kind{entity.KindPickup, entity.KindPowerToken, entity.KindPursuer, entity.KindPlayer} {
		for _, v := range views {
			if v.Kind != kind {
				continue
			}
			x, y := b.project(v.Pos)
			glyph, color := appearance(v)
			dst.DrawText(x-len([]rune(glyph))/2, y, glyph, color)
		}
	}
}

// appearance returns the glyph and color for one entity. Faded entities
// (flashing player, pulsing scared pursuer) are drawn gray.
func appearance(v sim.EntityView) (string, core.Color) {
	faded := v.Alpha < 1
	switch v.Kind {
	case entity.KindPickup:
		return "·", core.ColorYellow
	case entity.KindPowerToken:
		if v.Scale > 1 {
			return "◆", core.ColorBrightMagenta
		}
		return "◇", core.ColorMagenta
	case entity.KindPursuer:
		glyph := "F"
		color := core.ColorRed
		if v.Scared {
			glyph = "f"
			color = core.ColorBrightBlue
		}
		if faded {
			color = core.ColorGray
		}
		if v.FlipX {
			return "<" + glyph, color
		}
		return glyph + ">", color
	case entity.KindPlayer:
		color := core.ColorOrange
		if faded {
			color = core.ColorGray
		}
		if v.FlipX {
			return "<@", color
		}
		return "@>", color
	}
	return "?", core.ColorDefault
}

// renderPhase draws the overlay for every phase except active play.
func (g *Game) renderPhase(dst *core.Screen, snap sim.Snapshot) {
	st := snap.State
	switch st.Phase {
	case sim.PhaseIdle:
		name := fmt.Sprintf("Level %d", st.Level)
		if snap.LevelName != "" {
			name += ": " + snap.LevelName
		}
		g.renderOverlay(dst, name, "ENTER or an arrow key to start")
	case sim.PhaseWin:
		if st.Final {
			g.renderOverlay(dst, "Campaign complete!", fmt.Sprintf("Final score: %d - R to play again", st.Score))
		} else {
			g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", st.Level), "N: next level  R: replay")
		}
	case sim.PhaseGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d - R to restart", st.Score))
	case sim.PhasePlaying:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	r := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorWhite)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
