package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/turkeyrun/internal/physics"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		sig      Signal
		maxLevel int
		want     TransitionRequest
		wantErr  bool
	}{
		{"start from idle", PhaseIdle, SignalStart, 0, TransitionRequest{KeepScore: true, NextLevel: 4}, false},
		{"start while playing", PhasePlaying, SignalStart, 0, TransitionRequest{}, true},
		{"restart idle", PhaseIdle, SignalRestart, 0, TransitionRequest{}, true},
		{"restart playing", PhasePlaying, SignalRestart, 0, TransitionRequest{NextLevel: 4}, false},
		{"restart after win", PhaseWin, SignalRestart, 0, TransitionRequest{NextLevel: 4}, false},
		{"restart after loss", PhaseGameOver, SignalRestart, 0, TransitionRequest{NextLevel: 4}, false},
		{"next after win", PhaseWin, SignalNextLevel, 0, TransitionRequest{KeepScore: true, NextLevel: 5}, false},
		{"next below max", PhaseWin, SignalNextLevel, 5, TransitionRequest{KeepScore: true, NextLevel: 5}, false},
		{"next at max", PhaseWin, SignalNextLevel, 4, TransitionRequest{}, true},
		{"next after loss", PhaseGameOver, SignalNextLevel, 0, TransitionRequest{}, true},
		{"next while playing", PhasePlaying, SignalNextLevel, 0, TransitionRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transition(State{Phase: tt.phase, Level: 4, Score: 9}, tt.sig, tt.maxLevel)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("err = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("request = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChannelObserverNeverBlocks(t *testing.T) {
	obs := NewChannelObserver(2)
	obs.OnEvent(Event{Kind: EventScoreChanged, Value: 1})
	obs.OnEvent(Event{Kind: EventScoreChanged, Value: 2})
	obs.OnEvent(Event{Kind: EventGameWin})

	if obs.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", obs.Dropped())
	}
	got := obs.Drain()
	if len(got) != 2 || got[1].Value != 2 {
		t.Errorf("drained %v", got)
	}
	if len(obs.Drain()) != 0 {
		t.Error("second drain not empty")
	}
}

func TestEventString(t *testing.T) {
	if got := (Event{Kind: EventGameOver, Value: 42}).String(); got != "game-over(42)" {
		t.Errorf("String = %q", got)
	}
	if got := (Event{Kind: EventGameWin}).String(); got != "game-win" {
		t.Errorf("String = %q", got)
	}
}

func TestOrderContactsPutsItemsFirst(t *testing.T) {
	contacts := []physics.Contact{
		{Kind: physics.ContactPursuer, Other: 3},
		{Kind: physics.ContactPickup, Other: 9},
		{Kind: physics.ContactPursuer, Other: 1},
		{Kind: physics.ContactPower, Other: 5},
	}
	orderContacts(contacts)

	want := []physics.ContactKind{physics.ContactPower, physics.ContactPickup, physics.ContactPursuer, physics.ContactPursuer}
	for i, c := range contacts {
		if c.Kind != want[i] {
			t.Fatalf("order = %v", contacts)
		}
	}
	if contacts[2].Other != 1 || contacts[3].Other != 3 {
		t.Errorf("pursuers not in ID order: %v", contacts)
	}
}
