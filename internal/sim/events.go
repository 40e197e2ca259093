package sim

import "fmt"

// EventKind names an outbound session event.
type EventKind uint8

const (
	EventScoreChanged EventKind = iota + 1
	EventLivesChanged
	EventLevelChanged
	EventGameOver // Value is the final score
	EventGameWin
)

func (k EventKind) String() string {
	switch k {
	case EventScoreChanged:
		return "score-changed"
	case EventLivesChanged:
		return "lives-changed"
	case EventLevelChanged:
		return "level-changed"
	case EventGameOver:
		return "game-over"
	case EventGameWin:
		return "game-win"
	default:
		return "unknown"
	}
}

// Event is one notification from the engine to its observers.
type Event struct {
	Kind  EventKind
	Value int
}

func (e Event) String() string {
	if e.Kind == EventGameWin {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", e.Kind, e.Value)
}

// Observer receives engine events synchronously, inside the tick or
// signal that caused them. Implementations must not call back into the
// engine.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

// ChannelObserver forwards events to a buffered channel without ever
// blocking the simulation. Events that do not fit are counted and dropped.
type ChannelObserver struct {
	ch      chan Event
	dropped int
}

// NewChannelObserver creates an observer with room for size events.
func NewChannelObserver(size int) *ChannelObserver {
	if size < 1 {
		size = 1
	}
	return &ChannelObserver{ch: make(chan Event, size)}
}

// OnEvent implements Observer.
func (c *ChannelObserver) OnEvent(ev Event) {
	select {
	case c.ch <- ev:
	default:
		c.dropped++
	}
}

// Events is the receive side of the feed.
func (c *ChannelObserver) Events() <-chan Event {
	return c.ch
}

// Dropped returns how many events did not fit in the buffer.
func (c *ChannelObserver) Dropped() int {
	return c.dropped
}

// Drain returns every buffered event without blocking.
func (c *ChannelObserver) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-c.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}
