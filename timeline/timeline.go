// Package timeline declares the timed auto-transitions between phases.
package timeline

import (
	"time"

	"github.com/lixenwraith/motus/phase"
)

// Edge is one auto-transition: after Delay in From, move to To
type Edge struct {
	From  phase.Phase
	To    phase.Phase
	Delay time.Duration
}

// Timeline is an ordered, immutable list of edges
type Timeline struct {
	edges []Edge
}

// New creates a timeline from edges in declaration order
func New(edges ...Edge) *Timeline {
	return &Timeline{edges: append([]Edge(nil), edges...)}
}

// FindEdge returns the first edge leaving from
func (t *Timeline) FindEdge(from phase.Phase) (Edge, bool) {
	for _, e := range t.edges {
		if e.From == from {
			return e, true
		}
	}
	return Edge{}, false
}

// Edges returns a copy of the declared edges
func (t *Timeline) Edges() []Edge {
	return append([]Edge(nil), t.edges...)
}

// IsTerminal reports whether p has no outgoing edge
func (t *Timeline) IsTerminal(p phase.Phase) bool {
	_, ok := t.FindEdge(p)
	return !ok
}

// PhaseDuration is the time spent in p before its edge fires
// Terminal phases report terminalHold, the nominal span used for progress
func (t *Timeline) PhaseDuration(p phase.Phase, terminalHold time.Duration) time.Duration {
	if e, ok := t.FindEdge(p); ok {
		return e.Delay
	}
	return terminalHold
}

// TotalDuration walks the chain from start and sums phase durations,
// adding terminalHold for the phase the chain ends in
// A cycle stops the walk at the first repeated phase
func (t *Timeline) TotalDuration(start phase.Phase, terminalHold time.Duration) time.Duration {
	var total time.Duration
	seen := make(map[phase.Phase]bool)
	p := start
	for !seen[p] {
		seen[p] = true
		e, ok := t.FindEdge(p)
		if !ok {
			return total + terminalHold
		}
		total += e.Delay
		p = e.To
	}
	return total
}
