// Package orchestrator translates the current phase into pulse, halo and
// outer field parameters. It knows nothing about rendering; it only answers
// "what should the visuals look like in this phase".
package orchestrator

import (
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/visual"
)

// Entry is one phase's row in the table; any part may be absent
type Entry struct {
	Pulse *visual.PulseConfig
	Halo  *visual.HaloConfig
	Field *visual.FieldConfig
}

// Table maps phases to configuration; Initial names the fallback row
type Table struct {
	Initial phase.Phase
	Entries map[phase.Phase]Entry
}

// Last-resort values when even the initial phase has no row
var (
	DefaultPulse = visual.PulseConfig{Frequency: 1.0 / 6, Amplitude: 0.03, Color: 0xdddddd}
	DefaultHalo  = visual.HaloConfig{ScaleMultiplier: 0.96, Opacity: 0.1, Variation: 0.6}
)

// PhaseSource reports the active phase
type PhaseSource interface {
	Current() phase.Phase
}

// Orchestrator resolves configuration for phases
type Orchestrator struct {
	source PhaseSource
	table  Table
}

// New creates an orchestrator over a copy of table
func New(source PhaseSource, table Table) *Orchestrator {
	entries := make(map[phase.Phase]Entry, len(table.Entries))
	for p, e := range table.Entries {
		entries[p] = copyEntry(e)
	}
	return &Orchestrator{
		source: source,
		table:  Table{Initial: table.Initial, Entries: entries},
	}
}

// Resolve returns the configuration for p
// Missing pulse or halo falls back to the initial phase's row; a missing
// field stays nil, meaning the outer field keeps its current parameters
func (o *Orchestrator) Resolve(p phase.Phase) visual.Configs {
	entry := o.table.Entries[p]
	initial := o.table.Entries[o.table.Initial]

	out := visual.Configs{
		Pulse: DefaultPulse,
		Halo:  DefaultHalo,
	}
	switch {
	case entry.Pulse != nil:
		out.Pulse = *entry.Pulse
	case initial.Pulse != nil:
		out.Pulse = *initial.Pulse
	}
	switch {
	case entry.Halo != nil:
		out.Halo = *entry.Halo
	case initial.Halo != nil:
		out.Halo = *initial.Halo
	}
	if entry.Field != nil {
		f := *entry.Field
		out.Field = &f
	}
	return out
}

// Current resolves the source's active phase
func (o *Orchestrator) Current() visual.Configs {
	if o.source == nil {
		return o.Resolve(o.table.Initial)
	}
	return o.Resolve(o.source.Current())
}

func copyEntry(e Entry) Entry {
	var out Entry
	if e.Pulse != nil {
		v := *e.Pulse
		out.Pulse = &v
	}
	if e.Halo != nil {
		v := *e.Halo
		out.Halo = &v
	}
	if e.Field != nil {
		v := *e.Field
		out.Field = &v
	}
	return out
}
