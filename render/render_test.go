package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/motus/status"
	"github.com/lixenwraith/motus/visual"
	"github.com/lixenwraith/motus/whisper"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func readRow(s tcell.Screen, y, x0, n int) string {
	var b strings.Builder
	for x := x0; x < x0+n; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

type recordingLayer struct {
	name  string
	order *[]string
}

func (l recordingLayer) Render(Context, *Buffer) {
	*l.order = append(*l.order, l.name)
}

type hiddenLayer struct{ recordingLayer }

func (hiddenLayer) IsVisible() bool { return false }

func TestOrchestratorPriorityOrder(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	o := NewOrchestrator(s)
	var order []string

	o.Register(recordingLayer{"whisper", &order}, PriorityWhisper)
	o.Register(recordingLayer{"field", &order}, PriorityField)
	o.Register(recordingLayer{"core-a", &order}, PriorityCore)
	o.Register(hiddenLayer{recordingLayer{"hidden", &order}}, PriorityHalo)
	o.Register(recordingLayer{"core-b", &order}, PriorityCore)

	o.RenderFrame(Context{})
	if got := strings.Join(order, ","); got != "field,core-a,core-b,whisper" {
		t.Errorf("render order = %s", got)
	}
	if o.Len() != 5 {
		t.Errorf("Len = %d, want 5", o.Len())
	}
}

func TestCoreLayerDrawsDisc(t *testing.T) {
	s := newSimScreen(t, 80, 40)
	o := NewOrchestrator(s)
	core := NewCoreLayer()
	core.ApplyPulseConfig(visual.PulseConfig{Frequency: 0.2, Amplitude: 0.03, Color: 0xffffff})
	o.Register(core, PriorityCore)
	o.RenderFrame(Context{})

	centre := o.Buffer().At(40, 20)
	if centre.Bg != (RGB{255, 255, 255}) {
		t.Errorf("centre bg = %+v, want white", centre.Bg)
	}
	if corner := o.Buffer().At(0, 0); corner.Bg != RgbBackground {
		t.Errorf("corner bg = %+v, want background", corner.Bg)
	}

	_, _, style, _ := s.GetContent(40, 20)
	_, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("screen centre bg = %v", bg)
	}

	core.Dispose()
	if core.IsVisible() {
		t.Error("disposed core still visible")
	}
}

func TestCoreTintBlendsTowardGold(t *testing.T) {
	core := NewCoreLayer()
	core.ApplyPulseConfig(visual.PulseConfig{Frequency: 0.2, Amplitude: 0.03, Color: 0xdddddd})
	plain := core.Color()
	core.SetGoldenTint(visual.Tint{Color: 0xe3c16f, Strength: 0.3})
	if core.Color() == plain {
		t.Error("tint did not change core color")
	}
	core.SetGoldenTint(visual.Tint{Color: 0xe3c16f})
	if core.Color() != plain {
		t.Error("zero-strength tint changed core color")
	}
}

func TestOscillatorTransition(t *testing.T) {
	o := newOscillator(1)
	o.apply(visual.PulseConfig{Frequency: 0.1, Amplitude: 0.02, Color: 0x000000})
	if o.freq != 0.1 || o.transitioning {
		t.Fatalf("first apply should set directly: freq=%v transitioning=%v", o.freq, o.transitioning)
	}

	o.apply(visual.PulseConfig{Frequency: 0.3, Amplitude: 0.06, Color: 0xffffff})
	o.update(PulseTransitionDuration / 2)
	if o.freq <= 0.1 || o.freq >= 0.3 {
		t.Errorf("mid-transition freq = %v, want between 0.1 and 0.3", o.freq)
	}

	o.update(PulseTransitionDuration)
	if o.freq != 0.3 || o.amp != 0.06 || o.color != 0xffffff || o.transitioning {
		t.Errorf("after transition: freq=%v amp=%v color=%v transitioning=%v", o.freq, o.amp, o.color, o.transitioning)
	}
}

func TestHaloAndFieldTakeConfig(t *testing.T) {
	halo := NewHaloLayer()
	halo.ApplyHaloConfig(visual.HaloConfig{ScaleMultiplier: 1.2, Opacity: 0.2, Variation: 1})
	if halo.Config().Opacity != 0.2 {
		t.Errorf("halo config not applied: %+v", halo.Config())
	}
	if op := halo.Opacity(); op != 0.2 {
		t.Errorf("halo opacity at phase 0 = %v, want 0.2", op)
	}

	field := NewFieldLayer(NewNoise(1))
	field.ApplyOuterFieldConfig(visual.FieldConfig{ScaleMultiplier: 1.1, Opacity: 0.075, Variation: 0.7})
	if field.Config().Variation != 0.7 {
		t.Errorf("field config not applied: %+v", field.Config())
	}
	plain := field.Color()
	field.SetGoldenTint(visual.Tint{Color: 0xe3c16f, Strength: 0.35})
	if field.Color() == plain {
		t.Error("tint did not change field color")
	}

	s := newSimScreen(t, 120, 40)
	o := NewOrchestrator(s)
	o.Register(field, PriorityField)
	o.Register(halo, PriorityHalo)
	field.Update(time.Second)
	halo.Update(time.Second)
	o.RenderFrame(Context{})
	if o.Buffer().At(60, 20).Bg == RgbBackground {
		t.Error("halo left the centre untouched")
	}
}

type fixedWhispers []whisper.Whisper

func (f fixedWhispers) Active() []whisper.Whisper { return f }

func TestWhisperLayerDrawsText(t *testing.T) {
	s := newSimScreen(t, 80, 40)
	o := NewOrchestrator(s)
	src := fixedWhispers{{
		Text:     "hello",
		Kind:     whisper.KindFinal,
		IsFinal:  true,
		Position: whisper.Point{X: 40, Y: 30},
		Opacity:  1,
	}}
	o.Register(NewWhisperLayer(src, NewNoise(1), 48, 1), PriorityWhisper)
	o.RenderFrame(Context{})

	if got := readRow(s, 30, 38, 5); got != "hello" {
		t.Errorf("row 30 = %q, want hello", got)
	}
	_, _, style, _ := s.GetContent(38, 30)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("final whisper not bold")
	}
}

func TestWhisperLayerSkipsInvisible(t *testing.T) {
	s := newSimScreen(t, 80, 40)
	o := NewOrchestrator(s)
	src := fixedWhispers{{Text: "gone", Position: whisper.Point{X: 40, Y: 30}, Opacity: 0}}
	o.Register(NewWhisperLayer(src, nil, 48, 1), PriorityWhisper)
	o.RenderFrame(Context{})

	if got := readRow(s, 30, 38, 4); strings.TrimSpace(got) != "" {
		t.Errorf("row 30 = %q, want blank", got)
	}
}

func TestWhisperLayerWraps(t *testing.T) {
	s := newSimScreen(t, 80, 40)
	o := NewOrchestrator(s)
	src := fixedWhispers{{
		Text:     "alpha beta",
		IsFinal:  true,
		Position: whisper.Point{X: 40, Y: 30},
		Opacity:  1,
	}}
	o.Register(NewWhisperLayer(src, nil, 6, 1), PriorityWhisper)
	o.RenderFrame(Context{})

	// Two lines centred on row 30 occupy rows 29 and 30
	if got := readRow(s, 29, 38, 5); got != "alpha" {
		t.Errorf("row 29 = %q, want alpha", got)
	}
	if got := readRow(s, 30, 38, 4); got != "beta" {
		t.Errorf("row 30 = %q, want beta", got)
	}
}

func TestWhisperDriftStaysWithinFrameDrift(t *testing.T) {
	for _, drift := range []float64{0, 1} {
		s := newSimScreen(t, 80, 20)
		o := NewOrchestrator(s)
		src := fixedWhispers{{Text: "x", Position: whisper.Point{X: 40, Y: 10}, Opacity: 1, Seed: 2.5}}
		o.Register(NewWhisperLayer(src, NewNoise(3), 48, drift), PriorityWhisper)

		for sec := 0; sec <= 600; sec += 5 {
			o.RenderFrame(Context{Elapsed: time.Duration(sec) * time.Second})
			col := -1
			for x := 0; x < 80; x++ {
				if r, _, _, _ := s.GetContent(x, 10); r == 'x' {
					col = x
					break
				}
			}
			if col < 0 {
				t.Fatalf("drift %v at %ds: whisper not drawn", drift, sec)
			}
			if off := col - 40; off < -int(drift) || off > int(drift) {
				t.Fatalf("drift %v at %ds: column offset %d", drift, sec, off)
			}
		}
	}
}

func TestDiagnosticsLayer(t *testing.T) {
	reg := status.NewRegistry()
	reg.Strings.Get(status.KeyPhase).Store("inner_drift")
	reg.Ints.Get(status.KeyElapsedMS).Store(20000)

	s := newSimScreen(t, 60, 10)
	o := NewOrchestrator(s)
	diag := NewDiagnosticsLayer(reg, status.DiagnosticKeys, true)
	o.Register(diag, PriorityDiagnostics)
	o.RenderFrame(Context{})

	want := "phase=inner_drift elapsed_ms=20000"
	if got := readRow(s, 0, 0, len(want)); got != want {
		t.Errorf("diagnostics = %q, want %q", got, want)
	}

	diag.Toggle()
	o.RenderFrame(Context{})
	if got := readRow(s, 0, 0, 5); strings.TrimSpace(got) != "" {
		t.Errorf("hidden diagnostics drew %q", got)
	}
}

func TestBufferResizeClears(t *testing.T) {
	b := NewBuffer(4, 2)
	b.SetBg(1, 1, RGB{200, 0, 0}, BlendReplace, 1)
	b.Resize(3, 3)
	if w, h := b.Size(); w != 3 || h != 3 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if b.At(1, 1).Bg != RgbBackground {
		t.Error("resize did not clear")
	}
	b.SetBg(10, 10, RGB{1, 2, 3}, BlendReplace, 1) // out of bounds, no panic
}
