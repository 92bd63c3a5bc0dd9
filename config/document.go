package config

import "github.com/lixenwraith/motus/phase"

// Document mirrors the TOML layout of the presentation tables
type Document struct {
	Initial        phase.Phase              `toml:"initial"`
	TerminalHoldMS int64                    `toml:"terminal_hold_ms"`
	Phases         map[string]EntryDoc      `toml:"phases"`
	Overrides      map[string]EntryDoc      `toml:"overrides"`
	Timeline       []EdgeDoc                `toml:"timeline"`
	MicroEvents    map[string]MicroEventDoc `toml:"micro_events"`
	Tint           TintDoc                  `toml:"tint"`
	Whispers       WhispersDoc              `toml:"whispers"`
}

// EntryDoc is one phase row; absent parts stay nil
type EntryDoc struct {
	Pulse *PulseDoc `toml:"pulse"`
	Halo  *LayerDoc `toml:"halo"`
	Field *LayerDoc `toml:"field"`
}

// PulseDoc is a pulse row
type PulseDoc struct {
	Frequency float64 `toml:"frequency"`
	Amplitude float64 `toml:"amplitude"`
	Color     string  `toml:"color"`
}

// LayerDoc is a halo or outer field row
type LayerDoc struct {
	ScaleMultiplier float64 `toml:"scale_multiplier"`
	Opacity         float64 `toml:"opacity"`
	Variation       float64 `toml:"variation"`
}

// EdgeDoc is one timeline edge
type EdgeDoc struct {
	From    phase.Phase `toml:"from"`
	To      phase.Phase `toml:"to"`
	DelayMS int64       `toml:"delay_ms"`
}

// MicroEventDoc is one phase's micro-event policy
type MicroEventDoc struct {
	MaxEvents           int     `toml:"max_events"`
	MinOffsetMS         int64   `toml:"min_offset_ms"`
	MaxOffsetMS         int64   `toml:"max_offset_ms"`
	DurationMS          int64   `toml:"duration_ms"`
	PulseAmpDelta       float64 `toml:"pulse_amp_delta"`
	PulseFreqDelta      float64 `toml:"pulse_freq_delta"`
	HaloOpacityDelta    float64 `toml:"halo_opacity_delta"`
	HaloScaleDelta      float64 `toml:"halo_scale_delta"`
	FieldVariationDelta float64 `toml:"field_variation_delta"`
}

// TintDoc shapes the golden tint
type TintDoc struct {
	Color               string        `toml:"color"`
	ConsciousnessPhases []phase.Phase `toml:"consciousness_phases"`
	SettledPhases       []phase.Phase `toml:"settled_phases"`
	AmplitudeMin        float64       `toml:"amplitude_min"`
	AmplitudeMax        float64       `toml:"amplitude_max"`
	MinIntensity        float64       `toml:"min_intensity"`
	MaxIntensity        float64       `toml:"max_intensity"`
	SettledMinIntensity float64       `toml:"settled_min_intensity"`
}

// WhispersDoc is the whisper script and placement policy
type WhispersDoc struct {
	Mode           string           `toml:"mode"`
	MaxOpacity     float64          `toml:"max_opacity"`
	RetireGraceMS  int64            `toml:"retire_grace_ms"`
	WindowRatio    float64          `toml:"window_ratio"`
	FadeInRatio    float64          `toml:"fade_in_ratio"`
	FadeOutRatio   float64          `toml:"fade_out_ratio"`
	MinPhaseLeadMS int64            `toml:"min_phase_lead_ms"`
	MaxTextWidth   int              `toml:"max_text_width"`
	SafeZone       SafeZoneDoc      `toml:"safe_zone"`
	Frame          FrameDoc         `toml:"frame"`
	Final          FinalDoc         `toml:"final"`
	Debug          DebugDoc         `toml:"debug"`
	Windows        []WindowDoc      `toml:"windows"`
	PhaseWindows   []PhaseWindowDoc `toml:"phase_windows"`
	Slots          []SlotDoc        `toml:"slots"`
}

// SafeZoneDoc sizes the protected circle
type SafeZoneDoc struct {
	RadiusRatio float64 `toml:"radius_ratio"`
	Padding     float64 `toml:"padding"`
	Aspect      float64 `toml:"aspect"`
}

// FrameDoc bounds placement
type FrameDoc struct {
	Margin         float64 `toml:"margin"`
	BaselineYRatio float64 `toml:"baseline_y_ratio"`
	Clearance      float64 `toml:"clearance"`
	Drift          float64 `toml:"drift"`
}

// FinalDoc is the closing whisper
type FinalDoc struct {
	ID                string        `toml:"id"`
	Text              string        `toml:"text"`
	MaxOpacity        float64       `toml:"max_opacity"`
	FadeInMS          int64         `toml:"fade_in_ms"`
	PreferredYRatio   float64       `toml:"preferred_y_ratio"`
	HorizontalSpread  float64       `toml:"horizontal_spread"`
	Phases            []phase.Phase `toml:"phases"`
	LeadMS            int64         `toml:"lead_ms"`
	ProgressThreshold float64       `toml:"progress_threshold"`
}

// DebugDoc is the start-of-run debug whisper
type DebugDoc struct {
	Text       string  `toml:"text"`
	DurationMS int64   `toml:"duration_ms"`
	MaxOpacity float64 `toml:"max_opacity"`
}

// WindowDoc is a progress-mode window given by its centre
type WindowDoc struct {
	ID     string  `toml:"id"`
	Center float64 `toml:"center"`
	Text   string  `toml:"text"`
}

// PhaseWindowDoc is a phase-mode window
type PhaseWindowDoc struct {
	ID        string      `toml:"id"`
	Phase     phase.Phase `toml:"phase"`
	Start     float64     `toml:"start"`
	End       float64     `toml:"end"`
	Text      string      `toml:"text"`
	FadeInMS  int64       `toml:"fade_in_ms"`
	HoldMS    int64       `toml:"hold_ms"`
	FadeOutMS int64       `toml:"fade_out_ms"`
}

// SlotDoc is a placement anchor
type SlotDoc struct {
	ID      string  `toml:"id"`
	AnchorX float64 `toml:"anchor_x"`
	AnchorY float64 `toml:"anchor_y"`
}
