package storage

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Entry is a leaderboard submission.
type Entry struct {
	GameID string
	Name   string
	Score  int
	Level  int
}

// Saver persists a finished session. *Store implements it.
type Saver interface {
	SaveScore(gameID, name string, score, level int) (int64, error)
}

var _ Saver = (*Store)(nil)

// Submitter writes entries on a background goroutine so the game loop
// never waits on the database. A nil Submitter, or one without a saver,
// accepts nothing and disables the leaderboard.
type Submitter struct {
	saver Saver
	log   *log.Logger
	ch    chan Entry
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewSubmitter starts the writer. buffer bounds how many entries may be
// pending before Submit starts dropping them.
func NewSubmitter(saver Saver, logger *log.Logger, buffer int) *Submitter {
	if buffer < 1 {
		buffer = 1
	}
	s := &Submitter{
		saver: saver,
		log:   logger,
		ch:    make(chan Entry, buffer),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Submitter) run() {
	defer close(s.done)
	for e := range s.ch {
		if s.saver == nil {
			continue
		}
		if _, err := s.saver.SaveScore(e.GameID, e.Name, e.Score, e.Level); err != nil && s.log != nil {
			s.log.Warn("leaderboard submit failed", "player", e.Name, "score", e.Score, "error", err)
		}
	}
}

// Submit queues e without blocking. It reports whether e was accepted.
func (s *Submitter) Submit(e Entry) bool {
	if s == nil || s.saver == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- e:
		return true
	default:
		if s.log != nil {
			s.log.Warn("leaderboard queue full, dropping entry", "player", e.Name, "score", e.Score)
		}
		return false
	}
}

// Close flushes pending entries and stops the writer.
func (s *Submitter) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()
	<-s.done
}
