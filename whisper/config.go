package whisper

import (
	"time"

	"github.com/lixenwraith/motus/phase"
)

// Mode selects how scripted whispers are triggered
type Mode uint8

const (
	// ModePhase triggers on phase-relative progress windows
	ModePhase Mode = iota
	// ModeProgress triggers on progress across the whole run
	ModeProgress
)

func (m Mode) String() string {
	if m == ModeProgress {
		return "progress"
	}
	return "phase"
}

// Envelope is the fade-in / hold / fade-out timing of one whisper
type Envelope struct {
	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration
}

// Total is the full envelope span
func (e Envelope) Total() time.Duration {
	return e.FadeIn + e.Hold + e.FadeOut
}

// ScheduleWindow is a run-progress interval in which one line may fire
type ScheduleWindow struct {
	ID    string
	Start float64
	End   float64
	Text  string
}

// PhaseWindow is a phase-progress interval in which one line may fire
type PhaseWindow struct {
	ID       string
	Phase    phase.Phase
	Start    float64
	End      float64
	Text     string
	Envelope Envelope
}

// Slot is a named anchor in viewport-relative coordinates
type Slot struct {
	ID      string
	AnchorX float64
	AnchorY float64
}

// SafeZoneConfig derives the protected circle from the viewport
type SafeZoneConfig struct {
	RadiusRatio float64 // of min(width/aspect, height)
	Padding     float64
	Aspect      float64 // cell height over cell width
}

// FrameConfig bounds placement inside the viewport
type FrameConfig struct {
	Margin         float64
	BaselineYRatio float64 // fallback line when no slot applies
	Clearance      float64 // gap kept between a pushed whisper and the safe zone
	Drift          float64 // horizontal sway the renderer applies, in cells
}

// FinalConfig describes the persistent closing whisper
type FinalConfig struct {
	ID                string
	Text              string
	MaxOpacity        float64
	FadeIn            time.Duration
	PreferredYRatio   float64
	HorizontalSpread  float64 // fraction of width, symmetric around centre
	Phases            []phase.Phase
	Lead              time.Duration
	ProgressThreshold float64
}

// DebugConfig injects one short whisper on the baseline at the start of a run
type DebugConfig struct {
	Enabled    bool
	Text       string
	Duration   time.Duration
	MaxOpacity float64
}

// Config is the immutable whisper script and placement policy of a run
type Config struct {
	Mode Mode

	// Progress mode
	TotalDuration time.Duration
	Windows       []ScheduleWindow
	WindowRatio   float64 // envelope span as a fraction of TotalDuration
	FadeInRatio   float64
	FadeOutRatio  float64

	// Phase mode
	PhaseWindows   []PhaseWindow
	PhaseDurations map[phase.Phase]time.Duration
	MinPhaseLead   time.Duration

	Final    FinalConfig
	Debug    DebugConfig
	Slots    []Slot
	SafeZone SafeZoneConfig
	Frame    FrameConfig

	MaxOpacity  float64
	RetireGrace time.Duration
}

// WindowsFromCenters builds progress windows of equal width around centers
func WindowsFromCenters(ids, texts []string, centers []float64, ratio float64) []ScheduleWindow {
	n := min(len(ids), len(texts), len(centers))
	out := make([]ScheduleWindow, 0, n)
	half := ratio / 2
	for i := 0; i < n; i++ {
		out = append(out, ScheduleWindow{
			ID:    ids[i],
			Start: clamp01(centers[i] - half),
			End:   clamp01(centers[i] + half),
			Text:  texts[i],
		})
	}
	return out
}
