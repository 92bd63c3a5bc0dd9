package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/motus/asset"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/whisper"
)

func mustDefault(t *testing.T) *Tables {
	t.Helper()
	tables, err := Decode([]byte(asset.DefaultTables))
	if err != nil {
		t.Fatalf("default tables: %v", err)
	}
	return tables
}

func TestDefaultTablesDecode(t *testing.T) {
	tables := mustDefault(t)

	if tables.Initial != phase.LivingInertia {
		t.Errorf("initial = %v, want living_inertia", tables.Initial)
	}
	if len(tables.Edges) != 5 {
		t.Fatalf("edges = %d, want 5", len(tables.Edges))
	}
	if got := tables.RunDuration(); got != 61*time.Second {
		t.Errorf("run duration = %v, want 61s", got)
	}
	if tables.Whispers.TotalDuration != 61*time.Second {
		t.Errorf("whisper total = %v, want 61s", tables.Whispers.TotalDuration)
	}
	if d := tables.Whispers.PhaseDurations[phase.TenseQuiet]; d != 12*time.Second {
		t.Errorf("terminal phase span = %v, want 12s", d)
	}
	if d := tables.Whispers.PhaseDurations[phase.InnerDrift]; d != 9*time.Second {
		t.Errorf("inner_drift span = %v, want 9s", d)
	}

	o, ok := tables.Overrides[phase.OpeningDistortion]
	if !ok || o.Pulse == nil || o.Pulse.Frequency != 0.42 || o.Pulse.Color != 0xf8f8f8 {
		t.Errorf("opening_distortion override = %+v", o)
	}
	if e := tables.Phases.Entries[phase.OpeningDistortion]; e.Field != nil {
		t.Errorf("opening_distortion field = %+v, want nil", e.Field)
	}

	if p := tables.MicroEvents[phase.OpeningDistortion]; p.EventCount() != 3 {
		t.Errorf("opening_distortion events = %d, want 3", p.EventCount())
	}
	if _, ok := tables.MicroEvents[phase.LivingInertia]; ok {
		t.Error("living_inertia has a micro-event policy")
	}

	if tables.Tint.Color != 0xe3c16f || len(tables.Tint.ConsciousnessPhases) != 2 {
		t.Errorf("tint = %+v", tables.Tint)
	}

	w := tables.Whispers
	if w.Mode != whisper.ModePhase {
		t.Errorf("mode = %v, want phase", w.Mode)
	}
	if len(w.Windows) != 3 || len(w.PhaseWindows) != 3 || len(w.Slots) != 7 {
		t.Errorf("windows=%d phase_windows=%d slots=%d", len(w.Windows), len(w.PhaseWindows), len(w.Slots))
	}
	if w.Windows[0].Start != 0 || w.Windows[2].End != 1 {
		t.Errorf("progress windows = %+v", w.Windows)
	}
	if w.RetireGrace != 50*time.Millisecond || w.MaxOpacity != 0.814 {
		t.Errorf("grace=%v max=%v", w.RetireGrace, w.MaxOpacity)
	}
	if w.SafeZone.Aspect != 2 || w.Frame.Drift != 1 {
		t.Errorf("safe zone aspect=%v frame drift=%v", w.SafeZone.Aspect, w.Frame.Drift)
	}
	if len(w.Final.Phases) != 1 || w.Final.Phases[0] != phase.TenseQuiet {
		t.Errorf("final phases = %v", w.Final.Phases)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown phase key": `
[phases.nowhere]
halo = { scale_multiplier = 1.0, opacity = 0.1, variation = 0.5 }
`,
		"zero frequency": `
[phases.living_inertia]
pulse = { frequency = 0.0, amplitude = 0.03, color = "#dddddd" }
`,
		"amplitude out of range": `
[overrides.first_pulse]
pulse = { frequency = 0.2, amplitude = 1.5, color = "#dddddd" }
`,
		"bad color": `
[phases.living_inertia]
pulse = { frequency = 0.2, amplitude = 0.03, color = "#zzzzzz" }
`,
		"zero delay": `
[[timeline]]
from = "living_inertia"
to = "first_pulse"
delay_ms = 0
`,
		"offsets reversed": `
[micro_events.first_pulse]
max_events = 1
min_offset_ms = 5000
max_offset_ms = 1000
duration_ms = 500
`,
		"field override": `
[overrides.first_pulse]
field = { scale_multiplier = 1.0, opacity = 0.1, variation = 0.5 }
`,
		"unknown key": `
colour = "red"
`,
		"bad mode": `
[whispers]
mode = "sometimes"
`,
		"negative drift": `
[whispers.frame]
drift = -1.0
`,
		"negative aspect": `
[whispers.safe_zone]
aspect = -2.0
`,
		"window bounds": `
[[whispers.phase_windows]]
id = "a"
phase = "first_pulse"
start = 0.8
end = 0.2
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			doc = "[tint]\ncolor = \"#e3c16f\"\n" + doc
			if _, err := Decode([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	_, err := Decode([]byte("[tint]\ncolor = \"#e3c16f\"\n[[timeline]]\nfrom = \"living_inertia\"\nto = \"first_pulse\"\ndelay_ms = -1\n"))
	if !errors.Is(err, ErrInvalidTables) {
		t.Fatalf("err = %v, want ErrInvalidTables", err)
	}
}

func TestUnknownPhaseValueFailsDecode(t *testing.T) {
	_, err := Decode([]byte("initial = \"somewhere\"\n"))
	if err == nil || !strings.Contains(err.Error(), "somewhere") {
		t.Fatalf("err = %v, want unknown phase error", err)
	}
}

func TestLoadTablesAutoPriority(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.toml")
	doc := strings.Replace(asset.DefaultTables, "terminal_hold_ms = 12000", "terminal_hold_ms = 5000", 1)
	if err := os.WriteFile(custom, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadTablesAuto(custom, asset.DefaultTables)
	if err != nil {
		t.Fatalf("LoadTablesAuto(custom): %v", err)
	}
	if tables.TerminalHold != 5*time.Second {
		t.Errorf("terminal hold = %v, want 5s from custom file", tables.TerminalHold)
	}

	if _, err := LoadTablesAuto(filepath.Join(dir, "missing.toml"), asset.DefaultTables); err == nil {
		t.Error("missing custom path should fail")
	}

	t.Chdir(dir)
	tables, err = LoadTablesAuto("", asset.DefaultTables)
	if err != nil {
		t.Fatalf("LoadTablesAuto(embedded): %v", err)
	}
	if tables.TerminalHold != 12*time.Second {
		t.Errorf("terminal hold = %v, want embedded 12s", tables.TerminalHold)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("MOTUS_DEBUG", "true")
	t.Setenv("MOTUS_FPS", "60")
	t.Setenv("MOTUS_SEED", "42")
	t.Setenv("MOTUS_WHISPER_MODE", "progress")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !s.Debug || s.FrameRate != 60 || s.Seed != 42 || s.WhisperMode != "progress" {
		t.Errorf("settings = %+v", s)
	}
	if s.LogFile != "logs/motus.log" || s.QASummaryAt != time.Minute || s.Volume != 0.25 {
		t.Errorf("defaults not applied: %+v", s)
	}
	if got := s.FrameInterval(); got != time.Second/60 {
		t.Errorf("frame interval = %v", got)
	}
}

func TestLoadSettingsRejects(t *testing.T) {
	t.Setenv("MOTUS_FPS", "0")
	if _, err := LoadSettings(); err == nil {
		t.Error("fps 0 accepted")
	}
	t.Setenv("MOTUS_FPS", "30")
	t.Setenv("MOTUS_VOLUME", "1.5")
	if _, err := LoadSettings(); err == nil {
		t.Error("volume 1.5 accepted")
	}
	t.Setenv("MOTUS_VOLUME", "0.5")
	t.Setenv("MOTUS_SEED", "not-a-number")
	if _, err := LoadSettings(); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Errorf("err = %v, want parse env error", err)
	}
}
