package config

import (
	"fmt"
	"time"

	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/whisper"
)

// ParseMode maps a mode name onto whisper.Mode; empty selects phase mode
func ParseMode(s string) (whisper.Mode, error) {
	switch s {
	case "", "phase":
		return whisper.ModePhase, nil
	case "progress":
		return whisper.ModeProgress, nil
	default:
		return 0, fmt.Errorf("unknown whisper mode %q", s)
	}
}

// buildWhispers validates the whisper section; phase spans come from the
// already-built timeline in t
func buildWhispers(d WhispersDoc, t *Tables) (whisper.Config, error) {
	var cfg whisper.Config
	fail := func(format string, args ...any) (whisper.Config, error) {
		return whisper.Config{}, fmt.Errorf("%w: whispers: %s", ErrInvalidTables, fmt.Sprintf(format, args...))
	}

	mode, err := ParseMode(d.Mode)
	if err != nil {
		return fail("%v", err)
	}
	if err := unit("max_opacity", d.MaxOpacity); err != nil {
		return fail("%v", err)
	}
	if err := unit("final.max_opacity", d.Final.MaxOpacity); err != nil {
		return fail("%v", err)
	}
	if err := unit("final.progress_threshold", d.Final.ProgressThreshold); err != nil {
		return fail("%v", err)
	}
	if d.WindowRatio < 0 || d.FadeInRatio < 0 || d.FadeOutRatio < 0 || d.FadeInRatio+d.FadeOutRatio > 1 {
		return fail("envelope ratios must be >= 0 and fade ratios must sum to <= 1")
	}
	if d.SafeZone.RadiusRatio < 0 || d.SafeZone.Padding < 0 || d.SafeZone.Aspect < 0 ||
		d.Frame.Margin < 0 || d.Frame.Clearance < 0 || d.Frame.Drift < 0 {
		return fail("safe zone and frame sizes must be >= 0")
	}
	if d.MaxTextWidth < 0 {
		return fail("max_text_width must be >= 0")
	}

	ids := make([]string, 0, len(d.Windows))
	texts := make([]string, 0, len(d.Windows))
	centers := make([]float64, 0, len(d.Windows))
	seen := make(map[string]bool)
	for i, w := range d.Windows {
		if w.ID == "" || seen[w.ID] {
			return fail("windows[%d]: id must be unique and non-empty", i)
		}
		seen[w.ID] = true
		if err := unit("center", w.Center); err != nil {
			return fail("windows[%d]: %v", i, err)
		}
		ids = append(ids, w.ID)
		texts = append(texts, w.Text)
		centers = append(centers, w.Center)
	}

	clear(seen)
	phaseWindows := make([]whisper.PhaseWindow, 0, len(d.PhaseWindows))
	for i, w := range d.PhaseWindows {
		if w.ID == "" || seen[w.ID] {
			return fail("phase_windows[%d]: id must be unique and non-empty", i)
		}
		seen[w.ID] = true
		if !(w.Start >= 0 && w.Start <= w.End && w.End <= 1) {
			return fail("phase_windows[%d]: need 0 <= start <= end <= 1", i)
		}
		if w.FadeInMS < 0 || w.HoldMS < 0 || w.FadeOutMS < 0 {
			return fail("phase_windows[%d]: envelope must be >= 0", i)
		}
		phaseWindows = append(phaseWindows, whisper.PhaseWindow{
			ID:    w.ID,
			Phase: w.Phase,
			Start: w.Start,
			End:   w.End,
			Text:  w.Text,
			Envelope: whisper.Envelope{
				FadeIn:  ms(w.FadeInMS),
				Hold:    ms(w.HoldMS),
				FadeOut: ms(w.FadeOutMS),
			},
		})
	}

	slots := make([]whisper.Slot, 0, len(d.Slots))
	for i, s := range d.Slots {
		if unit("anchor_x", s.AnchorX) != nil || unit("anchor_y", s.AnchorY) != nil {
			return fail("slots[%d]: anchors must be in [0,1]", i)
		}
		slots = append(slots, whisper.Slot{ID: s.ID, AnchorX: s.AnchorX, AnchorY: s.AnchorY})
	}

	tl := t.Timeline()
	durations := make(map[phase.Phase]time.Duration, len(phase.All()))
	for _, p := range phase.All() {
		durations[p] = tl.PhaseDuration(p, t.TerminalHold)
	}

	cfg = whisper.Config{
		Mode:           mode,
		TotalDuration:  tl.TotalDuration(t.Initial, t.TerminalHold),
		Windows:        whisper.WindowsFromCenters(ids, texts, centers, d.WindowRatio),
		WindowRatio:    d.WindowRatio,
		FadeInRatio:    d.FadeInRatio,
		FadeOutRatio:   d.FadeOutRatio,
		PhaseWindows:   phaseWindows,
		PhaseDurations: durations,
		MinPhaseLead:   ms(d.MinPhaseLeadMS),
		Final: whisper.FinalConfig{
			ID:                d.Final.ID,
			Text:              d.Final.Text,
			MaxOpacity:        d.Final.MaxOpacity,
			FadeIn:            ms(d.Final.FadeInMS),
			PreferredYRatio:   d.Final.PreferredYRatio,
			HorizontalSpread:  d.Final.HorizontalSpread,
			Phases:            d.Final.Phases,
			Lead:              ms(d.Final.LeadMS),
			ProgressThreshold: d.Final.ProgressThreshold,
		},
		Debug: whisper.DebugConfig{
			Text:       d.Debug.Text,
			Duration:   ms(d.Debug.DurationMS),
			MaxOpacity: d.Debug.MaxOpacity,
		},
		Slots: slots,
		SafeZone: whisper.SafeZoneConfig{
			RadiusRatio: d.SafeZone.RadiusRatio,
			Padding:     d.SafeZone.Padding,
			Aspect:      d.SafeZone.Aspect,
		},
		Frame: whisper.FrameConfig{
			Margin:         d.Frame.Margin,
			BaselineYRatio: d.Frame.BaselineYRatio,
			Clearance:      d.Frame.Clearance,
			Drift:          d.Frame.Drift,
		},
		MaxOpacity:  d.MaxOpacity,
		RetireGrace: ms(d.RetireGraceMS),
	}
	return cfg, nil
}
