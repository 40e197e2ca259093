// Package sched is a simulated-time task scheduler. Tasks belong to an
// owner (usually an entity ID) so tearing an owner down cancels every
// timer and animation it started. Time only moves when Advance is called.
package sched

import (
	"container/heap"
	"time"
)

// Owner keys the tasks of one entity or subsystem.
type Owner uint64

// Global is the owner for tasks that belong to no entity.
const Global Owner = 0

// TaskID identifies a scheduled task. IDs are never reused.
type TaskID uint64

// Forever makes Every repeat until cancelled.
const Forever = -1

// Func is a repeating callback. run counts from 1; last is true on the
// final run of a bounded task.
type Func func(run int, last bool)

type task struct {
	id        TaskID
	owner     Owner
	due       time.Duration
	interval  time.Duration
	remaining int
	run       int
	fn        Func
	seq       uint64
	index     int // position in the heap, -1 while running or removed
	cancelled bool
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old) - 1
	t := old[n]
	old[n] = nil
	t.index = -1
	*h = old[:n]
	return t
}

// Scheduler runs one-shot and repeating callbacks against simulated time.
// It is not safe for concurrent use; the simulation is single-threaded.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	nextID TaskID
	queue  taskHeap
	tasks  map[TaskID]*task
	paused bool
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{tasks: make(map[TaskID]*task)}
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, delay from now.
func (s *Scheduler) After(owner Owner, delay time.Duration, fn func()) TaskID {
	return s.schedule(owner, delay, 0, 1, func(int, bool) { fn() })
}

// Every runs fn each interval, repeats times in total (Forever for no limit).
func (s *Scheduler) Every(owner Owner, interval time.Duration, repeats int, fn Func) TaskID {
	if repeats == 0 {
		return 0
	}
	return s.schedule(owner, interval, interval, repeats, fn)
}

func (s *Scheduler) schedule(owner Owner, delay, interval time.Duration, repeats int, fn Func) TaskID {
	s.nextID++
	s.seq++
	t := &task{
		id:        s.nextID,
		owner:     owner,
		due:       s.now + max(delay, 0),
		interval:  max(interval, time.Nanosecond),
		remaining: repeats,
		fn:        fn,
		seq:       s.seq,
	}
	s.tasks[t.id] = t
	heap.Push(&s.queue, t)
	return t.id
}

// Cancel stops a task. It reports whether the task was still pending.
// Cancelling a task from inside its own callback stops further runs.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	s.drop(t)
	return true
}

// CancelOwner stops every task of owner and returns how many there were.
func (s *Scheduler) CancelOwner(owner Owner) int {
	n := 0
	for _, t := range s.tasks {
		if t.owner == owner {
			s.drop(t)
			n++
		}
	}
	return n
}

// CancelAll stops every task.
func (s *Scheduler) CancelAll() int {
	n := len(s.tasks)
	for _, t := range s.tasks {
		s.drop(t)
	}
	return n
}

func (s *Scheduler) drop(t *task) {
	t.cancelled = true
	delete(s.tasks, t.id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

// Pending returns the number of live tasks of owner.
func (s *Scheduler) Pending(owner Owner) int {
	n := 0
	for _, t := range s.tasks {
		if t.owner == owner {
			n++
		}
	}
	return n
}

// Active reports whether task id is still scheduled.
func (s *Scheduler) Active(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// SetPaused freezes or resumes simulated time.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether time is frozen.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Advance moves time forward by dt, running every task that falls due in
// due-time order. Tasks scheduled by callbacks run in the same call if
// they fall due before the new time. A paused scheduler ignores Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if s.paused || dt < 0 {
		return
	}
	target := s.now + dt
	for s.queue.Len() > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*task)
		s.now = t.due
		t.run++
		last := t.remaining > 0 && t.run >= t.remaining
		t.fn(t.run, last)

		if t.cancelled {
			continue
		}
		if last {
			delete(s.tasks, t.id)
			continue
		}
		s.seq++
		t.seq = s.seq
		t.due += t.interval
		heap.Push(&s.queue, t)
	}
	s.now = target
}
