// Package clock provides the single-threaded virtual timer queue that every
// delayed action in the presentation runs on, plus the pausable wall clock
// that feeds it frame deltas.
//
// The Scheduler never spawns goroutines: callbacks run synchronously inside
// Advance on the caller's goroutine, in deadline order. Production advances it
// once per frame with the frame delta; tests advance it directly to get
// deterministic virtual time.
package clock

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback; the zero Handle is never issued
type Handle uint64

// Scheduler is a virtual-time queue of one-shot callbacks
// Not safe for concurrent use; the frame loop owns it
type Scheduler struct {
	now     time.Duration
	nextID  Handle
	queue   timerQueue
	pending map[Handle]*timer
}

type timer struct {
	id       Handle
	deadline time.Duration
	fn       func()
	index    int
}

// NewScheduler creates a scheduler at virtual time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[Handle]*timer),
	}
}

// Now returns elapsed virtual time since creation
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d from now
// Non-positive d schedules for the current instant; it fires on the next Advance
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &timer{
		id:       s.nextID,
		deadline: s.now + d,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.pending[t.id] = t
	return t.id
}

// Cancel removes a pending callback; returns false if it already fired or was cancelled
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.pending[h]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.pending, h)
	return true
}

// IsPending reports whether h is still waiting to fire
func (s *Scheduler) IsPending(h Handle) bool {
	_, ok := s.pending[h]
	return ok
}

// Pending returns the number of callbacks waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Advance moves virtual time forward by d and fires every callback whose
// deadline falls at or before the new time
// Callbacks observe Now() equal to their own deadline; callbacks scheduled
// from inside a callback fire in the same Advance if they are already due
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.deadline > target {
			break
		}
		heap.Pop(&s.queue)
		delete(s.pending, next.id)
		if next.deadline > s.now {
			s.now = next.deadline
		}
		next.fn()
	}
	s.now = target
}

// timerQueue orders by deadline, then by issue order for equal deadlines
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].id < q[j].id
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
