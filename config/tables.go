// Package config turns the TOML presentation tables and the process
// environment into validated domain values.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/motus/coordinator"
	"github.com/lixenwraith/motus/microevent"
	"github.com/lixenwraith/motus/orchestrator"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/timeline"
	"github.com/lixenwraith/motus/visual"
	"github.com/lixenwraith/motus/whisper"
)

// DefaultTablesPath is checked when no explicit path is given
const DefaultTablesPath = "config/motus.toml"

// ErrInvalidTables wraps every validation failure
var ErrInvalidTables = errors.New("invalid tables")

// Tables is the validated, immutable configuration of one run
type Tables struct {
	Initial      phase.Phase
	TerminalHold time.Duration
	Phases       orchestrator.Table
	Overrides    map[phase.Phase]coordinator.Override
	Edges        []timeline.Edge
	MicroEvents  map[phase.Phase]microevent.Policy
	Tint         coordinator.TintSettings
	Whispers     whisper.Config
	MaxTextWidth int
}

// Timeline builds the timeline from the edges
func (t *Tables) Timeline() *timeline.Timeline {
	return timeline.New(t.Edges...)
}

// RunDuration is the nominal length of a full run including the terminal hold
func (t *Tables) RunDuration() time.Duration {
	return t.Timeline().TotalDuration(t.Initial, t.TerminalHold)
}

// LoadTablesAuto loads tables with priority: customPath > DefaultTablesPath > embedded
func LoadTablesAuto(customPath, embeddedFallback string) (*Tables, error) {
	if customPath != "" {
		return LoadTablesFromPath(customPath)
	}
	if fileExists(DefaultTablesPath) {
		return LoadTablesFromPath(DefaultTablesPath)
	}
	return Decode([]byte(embeddedFallback))
}

// LoadTablesFromPath reads and decodes a tables file
func LoadTablesFromPath(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables from %s: %w", path, err)
	}
	t, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables from %s: %w", path, err)
	}
	return t, nil
}

// Decode parses a TOML document and validates it into Tables
func Decode(data []byte) (*Tables, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal tables: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidTables, undecoded[0].String())
	}
	return Build(&doc)
}

// Build validates a decoded document
func Build(doc *Document) (*Tables, error) {
	if !doc.Initial.Valid() {
		return nil, fmt.Errorf("%w: initial phase %d", ErrInvalidTables, uint8(doc.Initial))
	}
	if doc.TerminalHoldMS < 0 {
		return nil, fmt.Errorf("%w: terminal_hold_ms must be >= 0", ErrInvalidTables)
	}

	t := &Tables{
		Initial:      doc.Initial,
		TerminalHold: ms(doc.TerminalHoldMS),
		MaxTextWidth: doc.Whispers.MaxTextWidth,
	}

	var err error
	if t.Phases, err = buildPhaseTable(doc.Initial, doc.Phases); err != nil {
		return nil, err
	}
	if t.Overrides, err = buildOverrides(doc.Overrides); err != nil {
		return nil, err
	}
	if t.Edges, err = buildEdges(doc.Timeline); err != nil {
		return nil, err
	}
	if t.MicroEvents, err = buildMicroEvents(doc.MicroEvents); err != nil {
		return nil, err
	}
	if t.Tint, err = buildTint(doc.Tint); err != nil {
		return nil, err
	}
	if t.Whispers, err = buildWhispers(doc.Whispers, t); err != nil {
		return nil, err
	}
	return t, nil
}

func buildPhaseTable(initial phase.Phase, rows map[string]EntryDoc) (orchestrator.Table, error) {
	table := orchestrator.Table{Initial: initial, Entries: make(map[phase.Phase]orchestrator.Entry, len(rows))}
	for name, row := range rows {
		p, err := phase.Parse(name)
		if err != nil {
			return table, fmt.Errorf("%w: phases: %w", ErrInvalidTables, err)
		}
		e, err := buildEntry(row)
		if err != nil {
			return table, fmt.Errorf("%w: phases.%s: %w", ErrInvalidTables, name, err)
		}
		table.Entries[p] = orchestrator.Entry{Pulse: e.Pulse, Halo: e.Halo, Field: e.Field}
	}
	return table, nil
}

func buildOverrides(rows map[string]EntryDoc) (map[phase.Phase]coordinator.Override, error) {
	out := make(map[phase.Phase]coordinator.Override, len(rows))
	for name, row := range rows {
		p, err := phase.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides: %w", ErrInvalidTables, err)
		}
		if row.Field != nil {
			return nil, fmt.Errorf("%w: overrides.%s: field cannot be overridden", ErrInvalidTables, name)
		}
		e, err := buildEntry(row)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides.%s: %w", ErrInvalidTables, name, err)
		}
		out[p] = coordinator.Override{Pulse: e.Pulse, Halo: e.Halo}
	}
	return out, nil
}

func buildEntry(row EntryDoc) (orchestrator.Entry, error) {
	var e orchestrator.Entry
	if row.Pulse != nil {
		pc, err := buildPulse(*row.Pulse)
		if err != nil {
			return e, fmt.Errorf("pulse: %w", err)
		}
		e.Pulse = &pc
	}
	if row.Halo != nil {
		if err := validateLayer(*row.Halo); err != nil {
			return e, fmt.Errorf("halo: %w", err)
		}
		e.Halo = &visual.HaloConfig{
			ScaleMultiplier: row.Halo.ScaleMultiplier,
			Opacity:         row.Halo.Opacity,
			Variation:       row.Halo.Variation,
		}
	}
	if row.Field != nil {
		if err := validateLayer(*row.Field); err != nil {
			return e, fmt.Errorf("field: %w", err)
		}
		e.Field = &visual.FieldConfig{
			ScaleMultiplier: row.Field.ScaleMultiplier,
			Opacity:         row.Field.Opacity,
			Variation:       row.Field.Variation,
		}
	}
	return e, nil
}

func buildPulse(d PulseDoc) (visual.PulseConfig, error) {
	if !(d.Frequency > 0) {
		return visual.PulseConfig{}, fmt.Errorf("frequency must be > 0, got %v", d.Frequency)
	}
	if err := unit("amplitude", d.Amplitude); err != nil {
		return visual.PulseConfig{}, err
	}
	c, err := visual.ParseColor(d.Color)
	if err != nil {
		return visual.PulseConfig{}, err
	}
	return visual.PulseConfig{Frequency: d.Frequency, Amplitude: d.Amplitude, Color: c}, nil
}

func validateLayer(d LayerDoc) error {
	if !(d.ScaleMultiplier > 0) {
		return fmt.Errorf("scale_multiplier must be > 0, got %v", d.ScaleMultiplier)
	}
	if err := unit("opacity", d.Opacity); err != nil {
		return err
	}
	if d.Variation < 0 {
		return fmt.Errorf("variation must be >= 0, got %v", d.Variation)
	}
	return nil
}

func buildEdges(rows []EdgeDoc) ([]timeline.Edge, error) {
	edges := make([]timeline.Edge, 0, len(rows))
	for i, r := range rows {
		if !r.From.Valid() || !r.To.Valid() {
			return nil, fmt.Errorf("%w: timeline[%d]: invalid phase", ErrInvalidTables, i)
		}
		if r.DelayMS <= 0 {
			return nil, fmt.Errorf("%w: timeline[%d]: delay_ms must be > 0", ErrInvalidTables, i)
		}
		edges = append(edges, timeline.Edge{From: r.From, To: r.To, Delay: ms(r.DelayMS)})
	}
	return edges, nil
}

func buildMicroEvents(rows map[string]MicroEventDoc) (map[phase.Phase]microevent.Policy, error) {
	out := make(map[phase.Phase]microevent.Policy, len(rows))
	for name, r := range rows {
		p, err := phase.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: micro_events: %w", ErrInvalidTables, err)
		}
		switch {
		case r.MaxEvents < 0:
			return nil, fmt.Errorf("%w: micro_events.%s: max_events must be >= 0", ErrInvalidTables, name)
		case r.MinOffsetMS < 0 || r.MaxOffsetMS < r.MinOffsetMS:
			return nil, fmt.Errorf("%w: micro_events.%s: offsets must satisfy 0 <= min <= max", ErrInvalidTables, name)
		case r.DurationMS <= 0 && r.MaxEvents > 0:
			return nil, fmt.Errorf("%w: micro_events.%s: duration_ms must be > 0", ErrInvalidTables, name)
		}
		out[p] = microevent.Policy{
			MaxEventsPerCycle:   r.MaxEvents,
			MinOffset:           ms(r.MinOffsetMS),
			MaxOffset:           ms(r.MaxOffsetMS),
			EventDuration:       ms(r.DurationMS),
			PulseAmpDelta:       r.PulseAmpDelta,
			PulseFreqDelta:      r.PulseFreqDelta,
			HaloOpacityDelta:    r.HaloOpacityDelta,
			HaloScaleDelta:      r.HaloScaleDelta,
			FieldVariationDelta: r.FieldVariationDelta,
		}
	}
	return out, nil
}

func buildTint(d TintDoc) (coordinator.TintSettings, error) {
	var s coordinator.TintSettings
	c, err := visual.ParseColor(d.Color)
	if err != nil {
		return s, fmt.Errorf("%w: tint: %w", ErrInvalidTables, err)
	}
	if d.AmplitudeMax < d.AmplitudeMin {
		return s, fmt.Errorf("%w: tint: amplitude_max < amplitude_min", ErrInvalidTables)
	}
	for name, v := range map[string]float64{
		"min_intensity":         d.MinIntensity,
		"max_intensity":         d.MaxIntensity,
		"settled_min_intensity": d.SettledMinIntensity,
	} {
		if err := unit(name, v); err != nil {
			return s, fmt.Errorf("%w: tint: %w", ErrInvalidTables, err)
		}
	}
	return coordinator.TintSettings{
		Color:               c,
		ConsciousnessPhases: d.ConsciousnessPhases,
		SettledPhases:       d.SettledPhases,
		AmplitudeMin:        d.AmplitudeMin,
		AmplitudeMax:        d.AmplitudeMax,
		MinIntensity:        d.MinIntensity,
		MaxIntensity:        d.MaxIntensity,
		SettledMinIntensity: d.SettledMinIntensity,
	}, nil
}

func unit(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%s must be in [0,1], got %v", name, v)
	}
	return nil
}

func ms(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
