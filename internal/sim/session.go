package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a signal the current phase does
// not accept.
var ErrInvalidTransition = errors.New("sim: invalid transition")

// Phase is the session lifecycle stage.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseWin
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseWin:
		return "win"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWin || p == PhaseGameOver
}

// Signal is an inbound session request.
type Signal uint8

const (
	SignalStart Signal = iota + 1
	SignalRestart
	SignalNextLevel
)

func (s Signal) String() string {
	switch s {
	case SignalStart:
		return "start"
	case SignalRestart:
		return "restart"
	case SignalNextLevel:
		return "next-level"
	default:
		return "unknown"
	}
}

// TransitionRequest describes how the next level is set up. It is passed
// by value and never mutated.
type TransitionRequest struct {
	KeepScore bool
	NextLevel int
}

// State is the session summary visible to callers.
type State struct {
	Phase            Phase
	Level            int
	Score            int
	Lives            int
	PickupsRemaining int
	TotalPickups     int
	PowerActive      bool
	// Final is set when a win happened on max_level.
	Final bool
}

// GameOver reports the lost state.
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// transition returns the request a signal produces from the state, or
// ErrInvalidTransition.
func transition(s State, sig Signal, maxLevel int) (TransitionRequest, error) {
	switch sig {
	case SignalStart:
		if s.Phase == PhaseIdle {
			return TransitionRequest{KeepScore: true, NextLevel: s.Level}, nil
		}
	case SignalRestart:
		if s.Phase != PhaseIdle {
			return TransitionRequest{KeepScore: false, NextLevel: s.Level}, nil
		}
	case SignalNextLevel:
		if s.Phase == PhaseWin && (maxLevel == 0 || s.Level < maxLevel) {
			return TransitionRequest{KeepScore: true, NextLevel: s.Level + 1}, nil
		}
	}
	return TransitionRequest{}, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, sig, s.Phase)
}
