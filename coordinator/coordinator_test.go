package coordinator

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/motus/clock"
	"github.com/lixenwraith/motus/microevent"
	"github.com/lixenwraith/motus/orchestrator"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/target"
	"github.com/lixenwraith/motus/timeline"
	"github.com/lixenwraith/motus/visual"
)

// recordingTarget captures every push in order
type recordingTarget struct {
	target.Base
	log    []string
	pulses []visual.PulseConfig
	halos  []visual.HaloConfig
	fields []visual.FieldConfig
	tints  []visual.Tint
}

func (r *recordingTarget) ApplyPulseConfig(c visual.PulseConfig) {
	r.log = append(r.log, "pulse")
	r.pulses = append(r.pulses, c)
}

func (r *recordingTarget) ApplyHaloConfig(c visual.HaloConfig) {
	r.log = append(r.log, "halo")
	r.halos = append(r.halos, c)
}

func (r *recordingTarget) ApplyOuterFieldConfig(c visual.FieldConfig) {
	r.log = append(r.log, "field")
	r.fields = append(r.fields, c)
}

func (r *recordingTarget) SetGoldenTint(t visual.Tint) {
	r.log = append(r.log, "tint")
	r.tints = append(r.tints, t)
}

// pulseOnlyTarget exposes a single capability
type pulseOnlyTarget struct {
	count int
}

func (p *pulseOnlyTarget) ApplyPulseConfig(visual.PulseConfig) { p.count++ }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pulse(f, a float64, c visual.Color) *visual.PulseConfig {
	return &visual.PulseConfig{Frequency: f, Amplitude: a, Color: c}
}

func testTable() orchestrator.Table {
	return orchestrator.Table{
		Initial: phase.LivingInertia,
		Entries: map[phase.Phase]orchestrator.Entry{
			phase.LivingInertia: {
				Pulse: pulse(0.12, 0.02, 0xcfcfcf),
				Halo:  &visual.HaloConfig{ScaleMultiplier: 0.96, Opacity: 0.1, Variation: 0.6},
				Field: &visual.FieldConfig{ScaleMultiplier: 1, Opacity: 0.035, Variation: 0.35},
			},
			phase.FirstPulse:     {Pulse: pulse(0.17, 0.04, 0xdadada)},
			phase.InnerDrift:     {Pulse: pulse(0.25, 0.065, 0xe8e8e8)},
			phase.EmergingRhythm: {Pulse: pulse(0.36, 0.09, 0xf5f5f5)},
		},
	}
}

func testTint() TintSettings {
	return TintSettings{
		Color:               0xe3c16f,
		ConsciousnessPhases: []phase.Phase{phase.EmergingRhythm, phase.OpeningDistortion},
		SettledPhases:       []phase.Phase{phase.TenseQuiet},
		AmplitudeMin:        0.02,
		AmplitudeMax:        0.105,
		MinIntensity:        0.08,
		MaxIntensity:        0.42,
		SettledMinIntensity: 0.22,
	}
}

func fullTimeline() *timeline.Timeline {
	return timeline.New(
		timeline.Edge{From: phase.LivingInertia, To: phase.FirstPulse, Delay: 10 * time.Second},
		timeline.Edge{From: phase.FirstPulse, To: phase.InnerDrift, Delay: 8 * time.Second},
		timeline.Edge{From: phase.InnerDrift, To: phase.EmergingRhythm, Delay: 9 * time.Second},
		timeline.Edge{From: phase.EmergingRhythm, To: phase.OpeningDistortion, Delay: 10 * time.Second},
		timeline.Edge{From: phase.OpeningDistortion, To: phase.TenseQuiet, Delay: 12 * time.Second},
	)
}

type fixture struct {
	machine *phase.Machine
	clock   *clock.Scheduler
	rec     *recordingTarget
	coord   *Coordinator
}

func newFixture(t *testing.T, allowed []phase.Phase, tl *timeline.Timeline, micro *microevent.Scheduler, overrides map[phase.Phase]Override) *fixture {
	t.Helper()
	m, err := phase.New(phase.LivingInertia, allowed, phase.WithLogger(quiet()))
	if err != nil {
		t.Fatal(err)
	}
	sched := clock.NewScheduler()
	rec := &recordingTarget{}
	c, err := New(Options{
		Machine:     m,
		Resolver:    orchestrator.New(m, testTable()),
		Timeline:    tl,
		Targets:     target.NewSet(rec),
		Clock:       sched,
		MicroEvents: micro,
		Overrides:   overrides,
		Tint:        testTint(),
		Logger:      quiet(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{machine: m, clock: sched, rec: rec, coord: c}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New(empty) returned nil error")
	}
}

func TestTwoPhaseScenario(t *testing.T) {
	tl := timeline.New(timeline.Edge{From: phase.LivingInertia, To: phase.FirstPulse, Delay: 10000 * time.Millisecond})
	f := newFixture(t, []phase.Phase{phase.LivingInertia, phase.FirstPulse}, tl, nil, nil)
	f.coord.Bootstrap()

	f.clock.Advance(9999 * time.Millisecond)
	if got := f.machine.Current(); got != phase.LivingInertia {
		t.Fatalf("at 9999ms phase = %v", got)
	}
	f.clock.Advance(time.Millisecond)
	if got := f.machine.Current(); got != phase.FirstPulse {
		t.Fatalf("at 10000ms phase = %v", got)
	}
	f.clock.Advance(time.Hour)
	if got := f.machine.Current(); got != phase.FirstPulse {
		t.Fatalf("terminal phase left: %v", got)
	}
	if f.coord.PendingTimers() != 0 {
		t.Errorf("PendingTimers() = %d on terminal phase", f.coord.PendingTimers())
	}
}

func TestEveryEdgeFiresExactlyOnceAtDelay(t *testing.T) {
	tl := fullTimeline()
	for _, edge := range tl.Edges() {
		f := newFixture(t, phase.All(), tl, nil, nil)
		f.coord.Bootstrap()

		// Walk to the edge's source phase
		for f.machine.Current() != edge.From {
			e, _ := tl.FindEdge(f.machine.Current())
			f.clock.Advance(e.Delay)
		}

		transitions := 0
		f.machine.Subscribe(func(prev, next phase.Phase) {
			if prev == edge.From && next == edge.To {
				transitions++
			}
		})

		f.clock.Advance(edge.Delay - time.Millisecond)
		if transitions != 0 || f.machine.Current() != edge.From {
			t.Fatalf("%v: transitioned before delay", edge.From)
		}
		f.clock.Advance(time.Millisecond)
		if transitions != 1 {
			t.Fatalf("%v -> %v: %d transitions at delay", edge.From, edge.To, transitions)
		}
		f.coord.Dispose()
	}
}

func TestEntryAppliesConfigsThenTint(t *testing.T) {
	f := newFixture(t, phase.All(), fullTimeline(), nil, nil)
	f.coord.Bootstrap()

	want := []string{"pulse", "halo", "field", "tint"}
	if len(f.rec.log) != len(want) {
		t.Fatalf("log = %v", f.rec.log)
	}
	for i := range want {
		if f.rec.log[i] != want[i] {
			t.Fatalf("log = %v, want %v", f.rec.log, want)
		}
	}
	if f.rec.tints[0].Strength != 0 {
		t.Errorf("initial tint strength = %v", f.rec.tints[0].Strength)
	}

	// FirstPulse has no field row: no field push
	f.rec.log = nil
	f.machine.SetState(phase.FirstPulse)
	for _, entry := range f.rec.log {
		if entry == "field" {
			t.Errorf("field pushed for a phase without field config: %v", f.rec.log)
		}
	}
}

func TestCapabilitySubsetTargets(t *testing.T) {
	m, _ := phase.New(phase.LivingInertia, phase.All(), phase.WithLogger(quiet()))
	p := &pulseOnlyTarget{}
	c, err := New(Options{
		Machine:  m,
		Resolver: orchestrator.New(m, testTable()),
		Timeline: fullTimeline(),
		Targets:  target.NewSet(p),
		Clock:    clock.NewScheduler(),
		Tint:     testTint(),
		Logger:   quiet(),
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Bootstrap()
	m.SetState(phase.FirstPulse)
	if p.count != 2 {
		t.Errorf("pulse-only target received %d pushes", p.count)
	}
}

func TestOverridesTakePrecedence(t *testing.T) {
	overrides := map[phase.Phase]Override{
		phase.OpeningDistortion: {
			Pulse: pulse(0.42, 0.105, 0xf8f8f8),
			Halo:  &visual.HaloConfig{ScaleMultiplier: 1.28, Opacity: 0.24, Variation: 1.25},
		},
	}
	f := newFixture(t, phase.All(), fullTimeline(), nil, overrides)
	f.coord.Bootstrap()
	f.machine.SetState(phase.OpeningDistortion)

	last := f.rec.pulses[len(f.rec.pulses)-1]
	if last.Frequency != 0.42 || last.Color != 0xf8f8f8 {
		t.Errorf("override pulse not applied: %+v", last)
	}
	halo := f.rec.halos[len(f.rec.halos)-1]
	if halo.Opacity != 0.24 {
		t.Errorf("override halo not applied: %+v", halo)
	}
}

func TestGoldenLatch(t *testing.T) {
	f := newFixture(t, phase.All(), fullTimeline(), nil, nil)
	f.coord.Bootstrap()

	f.machine.SetState(phase.InnerDrift)
	if f.coord.Latched() || f.coord.Snapshot().Tint.Strength != 0 {
		t.Fatal("tint active before consciousness")
	}
	f.machine.SetState(phase.EmergingRhythm)
	if !f.coord.Latched() || f.coord.Snapshot().Tint.Strength <= 0 {
		t.Fatal("tint not latched on consciousness phase")
	}
	// Back to a non-consciousness phase: latch holds
	f.machine.SetState(phase.FirstPulse)
	if !f.coord.Latched() || f.coord.Snapshot().Tint.Strength < testTint().MinIntensity {
		t.Errorf("latch released: %+v", f.coord.Snapshot().Tint)
	}
}

func TestGoldenStrengthCurve(t *testing.T) {
	s := testTint()

	if got, latch := GoldenStrength(s, phase.InnerDrift, 0.09, false); got != 0 || latch {
		t.Errorf("unlatched non-consciousness = %v, %v", got, latch)
	}

	lo, _ := GoldenStrength(s, phase.EmergingRhythm, 0.0, false)
	if lo != s.MinIntensity {
		t.Errorf("amplitude below envelope = %v, want %v", lo, s.MinIntensity)
	}
	hi, _ := GoldenStrength(s, phase.EmergingRhythm, 1.0, false)
	if hi != s.MaxIntensity {
		t.Errorf("amplitude above envelope = %v, want %v", hi, s.MaxIntensity)
	}

	// Midpoint is eased by squaring
	mid := (s.AmplitudeMin + s.AmplitudeMax) / 2
	got, _ := GoldenStrength(s, phase.EmergingRhythm, mid, false)
	want := s.MinIntensity + (s.MaxIntensity-s.MinIntensity)*0.25
	if d := got - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("midpoint = %v, want %v", got, want)
	}

	settled, _ := GoldenStrength(s, phase.TenseQuiet, 0.0, true)
	if settled != s.SettledMinIntensity {
		t.Errorf("settled floor = %v, want %v", settled, s.SettledMinIntensity)
	}

	for a := 0.0; a <= 0.2; a += 0.005 {
		v, _ := GoldenStrength(s, phase.OpeningDistortion, a, true)
		if v < s.MinIntensity || v > s.MaxIntensity {
			t.Fatalf("strength %v out of range at amplitude %v", v, a)
		}
	}
}

func TestManualTransitionReplacesArmedTimer(t *testing.T) {
	f := newFixture(t, phase.All(), fullTimeline(), nil, nil)
	f.coord.Bootstrap()

	f.clock.Advance(5 * time.Second)
	f.machine.SetState(phase.FirstPulse) // override path, 5s early

	var seen []phase.Phase
	f.machine.Subscribe(func(prev, next phase.Phase) { seen = append(seen, next) })

	// The stale 10s timer from LivingInertia must not fire at t=10s
	f.clock.Advance(5 * time.Second)
	if len(seen) != 0 {
		t.Fatalf("stale timeline timer fired: %v", seen)
	}
	f.clock.Advance(3 * time.Second) // 8s after entering FirstPulse
	if len(seen) != 1 || seen[0] != phase.InnerDrift {
		t.Fatalf("seen = %v, want [inner_drift]", seen)
	}
}

func TestBootstrapTwiceArmsOneTimer(t *testing.T) {
	f := newFixture(t, phase.All(), fullTimeline(), nil, nil)
	f.coord.Bootstrap()
	f.coord.Bootstrap()
	if n := f.clock.Pending(); n != 1 {
		t.Errorf("Pending() = %d after double bootstrap, want 1", n)
	}
}

func TestMicroEventsRescheduledPerPhase(t *testing.T) {
	policies := map[phase.Phase]microevent.Policy{
		phase.LivingInertia: {
			MaxEventsPerCycle: 2,
			MinOffset:         11 * time.Second, // beyond the phase: must be cancelled
			MaxOffset:         12 * time.Second,
			EventDuration:     time.Second,
			PulseAmpDelta:     0.5,
		},
		phase.FirstPulse: {
			MaxEventsPerCycle: 1,
			MinOffset:         2 * time.Second,
			MaxOffset:         2 * time.Second,
			EventDuration:     500 * time.Millisecond,
			PulseAmpDelta:     0.01,
		},
	}
	micro := microevent.NewScheduler(policies, rand.New(rand.NewSource(1)), quiet())
	f := newFixture(t, phase.All(), fullTimeline(), micro, nil)
	f.coord.Bootstrap()
	if got := f.coord.PendingTimers(); got != 3 {
		t.Fatalf("PendingTimers() = %d, want 1 timeline + 2 micro", got)
	}

	f.clock.Advance(10 * time.Second) // enter FirstPulse
	f.clock.Advance(2 * time.Second)  // micro-event start
	last := f.rec.pulses[len(f.rec.pulses)-1]
	if d := last.Amplitude - 0.05; d > 1e-9 || d < -1e-9 {
		t.Fatalf("override amplitude = %v, want 0.05", last.Amplitude)
	}
	f.clock.Advance(500 * time.Millisecond)
	last = f.rec.pulses[len(f.rec.pulses)-1]
	if last.Amplitude != 0.04 {
		t.Fatalf("restored amplitude = %v", last.Amplitude)
	}
	for _, p := range f.rec.pulses {
		if p.Amplitude > 0.5 {
			t.Fatal("cancelled LivingInertia micro-event fired")
		}
	}
	if f.coord.Snapshot().Overrides != 1 {
		t.Errorf("Overrides = %d", f.coord.Snapshot().Overrides)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	policies := map[phase.Phase]microevent.Policy{
		phase.LivingInertia: {MaxEventsPerCycle: 3, MinOffset: time.Second, MaxOffset: 5 * time.Second, EventDuration: time.Second},
	}
	micro := microevent.NewScheduler(policies, rand.New(rand.NewSource(3)), quiet())
	f := newFixture(t, phase.All(), fullTimeline(), micro, nil)
	f.coord.Bootstrap()

	f.coord.Dispose()
	if f.clock.Pending() != 0 || f.coord.PendingTimers() != 0 {
		t.Fatalf("pending after dispose: clock=%d coord=%d", f.clock.Pending(), f.coord.PendingTimers())
	}
	f.coord.Dispose()

	pushes := len(f.rec.log)
	f.machine.SetState(phase.FirstPulse)
	f.clock.Advance(time.Minute)
	if len(f.rec.log) != pushes {
		t.Error("disposed coordinator still reacting")
	}
	if f.machine.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after dispose", f.machine.ListenerCount())
	}
}

func TestDisposeDuringActiveMicroEvent(t *testing.T) {
	policies := map[phase.Phase]microevent.Policy{
		phase.LivingInertia: {
			MaxEventsPerCycle: 1,
			MinOffset:         2 * time.Second,
			MaxOffset:         2 * time.Second,
			EventDuration:     time.Second,
			PulseAmpDelta:     0.03,
		},
	}
	micro := microevent.NewScheduler(policies, rand.New(rand.NewSource(1)), quiet())
	f := newFixture(t, phase.All(), fullTimeline(), micro, nil)
	f.coord.Bootstrap()

	f.clock.Advance(2 * time.Second) // micro-event start, restore due at 3s
	last := f.rec.pulses[len(f.rec.pulses)-1]
	if d := last.Amplitude - 0.05; d > 1e-9 || d < -1e-9 {
		t.Fatalf("override amplitude = %v, want 0.05", last.Amplitude)
	}

	f.coord.Dispose()
	if f.clock.Pending() != 0 || f.coord.PendingTimers() != 0 {
		t.Fatalf("pending after dispose: clock=%d coord=%d", f.clock.Pending(), f.coord.PendingTimers())
	}

	pulses := len(f.rec.pulses)
	f.clock.Advance(time.Minute)
	if len(f.rec.pulses) != pulses {
		t.Errorf("pulse pushed after dispose: %+v", f.rec.pulses[pulses:])
	}
	if f.machine.Current() != phase.LivingInertia {
		t.Errorf("phase advanced after dispose: %v", f.machine.Current())
	}
	if f.clock.Pending() != 0 {
		t.Errorf("clock pending = %d after advancing past the restore", f.clock.Pending())
	}
}
