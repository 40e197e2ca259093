package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turkeyrun/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]core.Action{
		"ctrl+c": core.ActionQuit,
		"q":      core.ActionQuit,
		"w":      core.ActionUp,
		"up":     core.ActionUp,
		"s":      core.ActionDown,
		"down":   core.ActionDown,
		"a":      core.ActionLeft,
		"left":   core.ActionLeft,
		"d":      core.ActionRight,
		"right":  core.ActionRight,
		" ":      core.ActionStop,
		"space":  core.ActionStop,
		"enter":  core.ActionConfirm,
		"b":      core.ActionBack,
		"esc":    core.ActionBack,
		"p":      core.ActionPause,
		"r":      core.ActionRestart,
		"n":      core.ActionNextLevel,
		"1":      core.ActionCheat,
	}}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.bindings[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}
