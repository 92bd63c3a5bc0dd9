package clock

import "time"

// Group collects handles so a batch of timers can be cancelled together
// The zero value is unusable; create with NewGroup
type Group struct {
	sched   *Scheduler
	handles []Handle
}

// NewGroup creates an empty group bound to a scheduler
func NewGroup(s *Scheduler) *Group {
	return &Group{sched: s}
}

// After schedules fn on the underlying scheduler and records the handle
func (g *Group) After(d time.Duration, fn func()) Handle {
	h := g.sched.After(d, fn)
	g.handles = append(g.handles, h)
	return h
}

// Len returns the number of recorded handles, fired or not
func (g *Group) Len() int {
	return len(g.handles)
}

// Pending returns how many recorded handles have not fired or been cancelled
func (g *Group) Pending() int {
	n := 0
	for _, h := range g.handles {
		if g.sched.IsPending(h) {
			n++
		}
	}
	return n
}

// CancelAll cancels every recorded handle and empties the group
// Safe on an empty group and on handles that already fired
func (g *Group) CancelAll() {
	for len(g.handles) > 0 {
		last := len(g.handles) - 1
		g.sched.Cancel(g.handles[last])
		g.handles = g.handles[:last]
	}
}
