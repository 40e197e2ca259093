package turkeyrun

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/maze"
	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/sim"
)

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

// settings resets the package-level knobs after the test.
func settings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel(0)
		SetLogger(nil)
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turkeyrun.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(runtimeConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func render(g *Game, w, h int) string {
	screen := core.NewScreen(w, h)
	g.Render(screen)
	return screen.String()
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{GameID, MazeGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
	g, err := registry.Create(MazeGameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Turkey Run (Endless Maze)" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetParksIdle(t *testing.T) {
	settings(t)
	g := newGame(t, New())

	st := g.State()
	if !st.Paused || st.Level != 1 || st.Lives != 3 || st.Score != 0 {
		t.Errorf("State() = %+v, want idle level 1 with 3 lives", st)
	}

	out := render(g, 80, 24)
	for _, want := range []string{"Turkey Run - Level 1 Cornfield", "Lives: ♥♥♥", "Corn: 129/129", "ENTER or an arrow key to start", "@>"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestConfirmStartsPlay(t *testing.T) {
	settings(t)
	g := newGame(t, New())

	g.Step(frame())
	if snap, _ := g.Snapshot(); snap.Tick != 0 {
		t.Fatalf("idle step advanced the engine to tick %d", snap.Tick)
	}

	res := g.Step(frame(core.ActionConfirm))
	if res.State.Paused {
		t.Fatal("still paused after Confirm")
	}
	if snap, _ := g.Snapshot(); snap.Tick != 1 {
		t.Errorf("Tick = %d, want 1", snap.Tick)
	}
	if strings.Contains(render(g, 80, 24), "ENTER") {
		t.Error("start overlay still drawn while playing")
	}
}

func TestDirectionStartsPlay(t *testing.T) {
	settings(t)
	g := newGame(t, New())

	if res := g.Step(frame(core.ActionUp)); res.State.Paused {
		t.Error("arrow key did not start the level")
	}
}

func TestHeldDirection(t *testing.T) {
	g := New()

	g.steer(frame(core.ActionLeft))
	if in := g.input(); !in.Left || in.Right || in.Up || in.Down {
		t.Errorf("input() = %+v, want Left only", in)
	}

	// Empty frames keep the direction.
	g.steer(frame())
	if !g.input().Left {
		t.Error("direction dropped on an empty frame")
	}

	g.steer(frame(core.ActionDown))
	if in := g.input(); !in.Down || in.Left {
		t.Errorf("input() = %+v, want Down only", in)
	}

	g.steer(frame(core.ActionStop))
	if g.input() != (sim.Input{}) {
		t.Errorf("input() = %+v after Stop, want none", g.input())
	}
}

func TestPauseStopsTicks(t *testing.T) {
	settings(t)
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionPause))
	before, _ := g.Snapshot()
	for range 5 {
		g.Step(frame())
	}
	after, _ := g.Snapshot()
	if after.Tick != before.Tick {
		t.Errorf("paused game advanced from tick %d to %d", before.Tick, after.Tick)
	}
	if !g.State().Paused {
		t.Error("State().Paused = false while paused")
	}
	if !strings.Contains(render(g, 80, 24), "Paused") {
		t.Error("pause overlay missing")
	}

	g.Step(frame(core.ActionPause))
	resumed, _ := g.Snapshot()
	if resumed.Tick != after.Tick+1 {
		t.Errorf("Tick = %d after resume, want %d", resumed.Tick, after.Tick+1)
	}
}

func TestCheatDisabledByDefault(t *testing.T) {
	settings(t)
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))

	if res := g.Step(frame(core.ActionCheat)); res.State.Won {
		t.Error("cheat won without debug.cheats")
	}
}

func TestCheatWinAndNextLevel(t *testing.T) {
	settings(t)
	SetConfigPath(writeConfig(t, "debug:\n  cheats: true\n"))
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))

	res := g.Step(frame(core.ActionCheat))
	if !res.State.Won || res.State.Final {
		t.Fatalf("State() = %+v, want a non-final win", res.State)
	}
	if out := render(g, 80, 24); !strings.Contains(out, "Level 1 cleared!") {
		t.Errorf("win overlay missing:\n%s", out)
	}
	score := res.State.Score

	res = g.Step(frame(core.ActionNextLevel))
	if res.State.Level != 2 || res.State.Won || res.State.Paused {
		t.Errorf("State() = %+v, want level 2 in play", res.State)
	}
	if res.State.Score < score {
		t.Errorf("score dropped from %d to %d on next level", score, res.State.Score)
	}
}

func TestCheatIgnoredWhilePaused(t *testing.T) {
	settings(t)
	SetConfigPath(writeConfig(t, "debug:\n  cheats: true\n"))
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionPause))

	res := g.Step(frame(core.ActionCheat))
	if res.State.Won || !res.State.Paused {
		t.Fatalf("State() = %+v, want a paused level still in play", res.State)
	}

	g.Step(frame(core.ActionPause))
	if res = g.Step(frame(core.ActionCheat)); !res.State.Won {
		t.Errorf("State() = %+v, want the cheat to win once resumed", res.State)
	}
}

func TestFinalWinRestarts(t *testing.T) {
	settings(t)
	SetConfigPath(writeConfig(t, "debug:\n  cheats: true\nsession:\n  max_level: 1\n"))
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))

	res := g.Step(frame(core.ActionCheat))
	if !res.State.Won || !res.State.Final {
		t.Fatalf("State() = %+v, want the final win", res.State)
	}
	if !strings.Contains(render(g, 80, 24), "Campaign complete!") {
		t.Error("campaign overlay missing")
	}

	res = g.Step(frame(core.ActionNextLevel))
	if res.State.Level != 1 || res.State.Won {
		t.Errorf("State() = %+v, want level 1 replayed", res.State)
	}
}

func TestMazeModeStartsGenerated(t *testing.T) {
	settings(t)
	g := newGame(t, NewMaze())

	snap, ok := g.Snapshot()
	if !ok {
		t.Fatal("Snapshot() not available")
	}
	if !snap.Generated || snap.State.Level != maze.CatalogSize()+1 {
		t.Errorf("level %d generated=%v, want first generated level", snap.State.Level, snap.Generated)
	}
	if g.ID() != MazeGameID {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestStartLevelSetting(t *testing.T) {
	settings(t)
	SetStartLevel(2)
	g := newGame(t, New())

	if lvl := g.State().Level; lvl != 2 {
		t.Errorf("Level = %d, want 2", lvl)
	}
}

func TestDifficultyPreset(t *testing.T) {
	settings(t)
	SetDifficultyPreset("easy")
	g := newGame(t, New())

	if lives := g.State().Lives; lives != 5 {
		t.Errorf("Lives = %d on easy, want 5", lives)
	}
}

func TestStartFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T)
		errHas string
	}{
		{
			name:   "missing config",
			setup:  func(t *testing.T) { SetConfigPath(filepath.Join(t.TempDir(), "nope.yaml")) },
			errHas: "nope.yaml",
		},
		{
			name:   "unknown difficulty",
			setup:  func(t *testing.T) { SetDifficultyPreset("brutal") },
			errHas: "unknown difficulty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings(t)
			tt.setup(t)

			g := New()
			g.Reset(runtimeConfig())
			if g.Err() == nil || !strings.Contains(g.Err().Error(), tt.errHas) {
				t.Fatalf("Err() = %v, want it to mention %q", g.Err(), tt.errHas)
			}
			if !g.Step(frame(core.ActionConfirm)).State.Paused {
				t.Error("failed session reports play")
			}
			if !strings.Contains(render(g, 80, 24), "Cannot start Turkey Run") {
				t.Error("error overlay missing")
			}
		})
	}
}

func TestSmallScreen(t *testing.T) {
	settings(t)
	g := newGame(t, New())

	if out := render(g, 30, 10); !strings.Contains(out, "Window too small") {
		t.Errorf("small screen not reported:\n%s", out)
	}
}

func TestReloadAppliesOnTransition(t *testing.T) {
	settings(t)
	path := writeConfig(t, "debug:\n  cheats: true\n")
	SetConfigPath(path)
	g := newGame(t, New())
	g.Step(frame(core.ActionConfirm))

	if err := os.WriteFile(path, []byte("debug:\n  cheats: true\nsession:\n  lives: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := g.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if lives := g.State().Lives; lives != 3 {
		t.Errorf("Lives = %d mid-level, want 3 until the next transition", lives)
	}

	g.Step(frame(core.ActionCheat))
	res := g.Step(frame(core.ActionNextLevel))
	if res.State.Lives != 6 {
		t.Errorf("Lives = %d after transition, want 6", res.State.Lives)
	}
}

func TestReloadWithoutSession(t *testing.T) {
	if err := New().Reload(); err == nil {
		t.Error("Reload() without a session succeeded")
	}
}

func TestCatchBanner(t *testing.T) {
	g := New()
	g.events = sim.NewChannelObserver(4)
	g.lives = 3

	g.events.OnEvent(sim.Event{Kind: sim.EventLivesChanged, Value: 2})
	g.drain()

	if g.banner != "Caught! 2 lives left" || g.bannerTicks != bannerTicks {
		t.Errorf("banner = %q (%d ticks)", g.banner, g.bannerTicks)
	}
	if g.lives != 2 {
		t.Errorf("lives = %d, want 2", g.lives)
	}
}

func TestAppearance(t *testing.T) {
	tests := []struct {
		name  string
		view  sim.EntityView
		glyph string
		color core.Color
	}{
		{"player right", sim.EntityView{Kind: entity.KindPlayer, Alpha: 1}, "@>", core.ColorOrange},
		{"player left", sim.EntityView{Kind: entity.KindPlayer, Alpha: 1, FlipX: true}, "<@", core.ColorOrange},
		{"player flashing", sim.EntityView{Kind: entity.KindPlayer, Alpha: 0.3}, "@>", core.ColorGray},
		{"hostile pursuer", sim.EntityView{Kind: entity.KindPursuer, Alpha: 1, FlipX: true}, "<F", core.ColorRed},
		{"scared pursuer", sim.EntityView{Kind: entity.KindPursuer, Alpha: 1, Scared: true}, "f>", core.ColorBrightBlue},
		{"scared pulse", sim.EntityView{Kind: entity.KindPursuer, Alpha: 0.3, Scared: true}, "f>", core.ColorGray},
		{"pickup", sim.EntityView{Kind: entity.KindPickup, Alpha: 1}, "·", core.ColorYellow},
		{"power grown", sim.EntityView{Kind: entity.KindPowerToken, Alpha: 1, Scale: 1.2}, "◆", core.ColorBrightMagenta},
		{"power rest", sim.EntityView{Kind: entity.KindPowerToken, Alpha: 1, Scale: 1}, "◇", core.ColorMagenta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyph, color := appearance(tt.view)
			if glyph != tt.glyph || color != tt.color {
				t.Errorf("appearance() = %q/%d, want %q/%d", glyph, color, tt.glyph, tt.color)
			}
		})
	}
}
