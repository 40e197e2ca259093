// Package registry lets game modes announce themselves from init()
// functions so the CLI and the terminal platform can list and create them
// by ID without importing each mode directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/turkeyrun/internal/core"
)

// Game is what the platform drives: it owns no terminal, clock or
// storage. The platform maps keys to actions, ticks Step at a fixed rate
// and draws Render into a character screen.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// leaderboard key (e.g. "turkeyrun").
	ID() string

	// Title is the display name.
	Title() string

	// Reset (re)builds the session for the given terminal size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State summarizes the session for the platform.
	State() core.GameState
}

// Reloader is implemented by games whose tuning can be re-read while they
// run. The new values take effect at the game's next level transition.
type Reloader interface {
	Reload() error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
