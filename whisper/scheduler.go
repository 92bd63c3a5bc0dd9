package whisper

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/lixenwraith/motus/phase"
)

// Context is what the scheduler needs to know about the presentation each tick
type Context struct {
	Phase          phase.Phase
	PhaseElapsed   time.Duration
	ViewportWidth  float64
	ViewportHeight float64
}

// Options are the scheduler's collaborators
type Options struct {
	Rand     *rand.Rand
	Measurer Measurer
	QA       *QA // optional
	Logger   *slog.Logger
}

// Scheduler owns the whisper timeline: triggering, placement and retirement
// At most one whisper is ever active. Single-threaded; driven by Update
type Scheduler struct {
	cfg      Config
	rng      *rand.Rand
	measurer Measurer
	qa       *QA
	logger   *slog.Logger

	state   runState
	elapsed time.Duration
	active  []*Whisper
}

// New creates a scheduler for cfg
func New(cfg Config, opts Options) *Scheduler {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Measurer == nil {
		opts.Measurer = CellMeasurer{LineHeight: 1}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		cfg:      cfg,
		rng:      opts.Rand,
		measurer: opts.Measurer,
		qa:       opts.QA,
		logger:   opts.Logger,
		state:    newRunState(cfg.Debug.Enabled),
	}
}

// Reset restores the initial run state
func (s *Scheduler) Reset() {
	s.state = newRunState(s.cfg.Debug.Enabled)
	s.elapsed = 0
	s.active = nil
}

// Elapsed is the accumulated run time seen by Update
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// FinalTriggered reports whether the final whisper has spawned
func (s *Scheduler) FinalTriggered() bool {
	return s.state.finalTriggered
}

// Spawned is the number of whispers created since the last Reset
func (s *Scheduler) Spawned() int {
	return s.state.spawned
}

// Active returns a copy of the live whispers
func (s *Scheduler) Active() []Whisper {
	out := make([]Whisper, len(s.active))
	for i, w := range s.active {
		out[i] = *w
	}
	return out
}

// Update advances envelopes by dt, retires finished whispers and spawns at
// most one new whisper
func (s *Scheduler) Update(dt time.Duration, ctx Context) {
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt
	s.advance(dt)

	if len(s.active) > 0 {
		return
	}

	if s.state.debugPending {
		s.state.debugPending = false
		s.spawnDebug(ctx)
		return
	}

	if !s.state.finalTriggered && s.finalDue(ctx) {
		s.spawnFinal(ctx)
		return
	}
	if s.state.finalTriggered {
		return
	}

	switch s.cfg.Mode {
	case ModeProgress:
		s.triggerProgress(ctx)
	default:
		s.triggerPhase(ctx)
	}
}

func (s *Scheduler) advance(dt time.Duration) {
	kept := s.active[:0]
	for _, w := range s.active {
		w.Elapsed += dt
		w.Opacity = w.OpacityAt(w.Elapsed)
		if !w.IsFinal && w.Elapsed > w.Total()+s.cfg.RetireGrace {
			if s.qa != nil {
				s.qa.RecordRemoval(w, s.elapsed)
			}
			s.logger.Debug("whisper retired", "id", w.ID, "elapsed", w.Elapsed)
			continue
		}
		kept = append(kept, w)
	}
	clear(s.active[len(kept):])
	s.active = kept
}

// progress is the run fraction in progress mode
func (s *Scheduler) progress() float64 {
	if s.cfg.TotalDuration <= 0 {
		return 0
	}
	return clamp01(float64(s.elapsed) / float64(s.cfg.TotalDuration))
}

// phaseProgress is the fraction of the current phase elapsed
// ok is false when the phase has no known duration
func (s *Scheduler) phaseProgress(ctx Context) (float64, bool) {
	d := s.cfg.PhaseDurations[ctx.Phase]
	if d <= 0 {
		return 0, false
	}
	return clamp01(float64(ctx.PhaseElapsed) / float64(d)), true
}

func (s *Scheduler) finalDue(ctx Context) bool {
	if s.cfg.Final.Text == "" {
		return false
	}
	if s.cfg.Mode == ModeProgress {
		if s.cfg.TotalDuration <= 0 {
			return false
		}
		for _, w := range s.cfg.Windows {
			if !s.state.fired[w.ID] {
				return false
			}
		}
		return true
	}

	if !slices.Contains(s.cfg.Final.Phases, ctx.Phase) {
		return false
	}
	if ctx.PhaseElapsed < s.cfg.Final.Lead {
		return false
	}
	p, ok := s.phaseProgress(ctx)
	if !ok {
		// Unbounded terminal phase: the lead alone gates
		return true
	}
	return p >= s.cfg.Final.ProgressThreshold
}

func (s *Scheduler) triggerProgress(ctx Context) {
	if s.cfg.TotalDuration <= 0 {
		return
	}
	p := s.progress()
	for _, w := range s.cfg.Windows {
		if s.state.fired[w.ID] || p < w.Start || p > w.End {
			continue
		}
		s.state.fired[w.ID] = true
		span := time.Duration(float64(s.cfg.TotalDuration) * s.cfg.WindowRatio)
		fadeIn := time.Duration(float64(span) * s.cfg.FadeInRatio)
		fadeOut := time.Duration(float64(span) * s.cfg.FadeOutRatio)
		env := Envelope{FadeIn: fadeIn, FadeOut: fadeOut, Hold: max(0, span-fadeIn-fadeOut)}
		s.spawnScripted(w.ID, w.Text, env, ctx)
		return
	}
}

func (s *Scheduler) triggerPhase(ctx Context) {
	if ctx.PhaseElapsed < s.cfg.MinPhaseLead {
		return
	}
	p, ok := s.phaseProgress(ctx)
	if !ok {
		return
	}
	for _, w := range s.cfg.PhaseWindows {
		if w.Phase != ctx.Phase || s.state.fired[w.ID] || p < w.Start || p > w.End {
			continue
		}
		s.state.fired[w.ID] = true
		s.spawnScripted(w.ID, w.Text, w.Envelope, ctx)
		return
	}
}

func (s *Scheduler) spawnScripted(id, text string, env Envelope, ctx Context) {
	w := s.newWhisper(id, text, KindScripted, env, s.cfg.MaxOpacity)
	s.place(w, ctx, s.preferredPosition(w, ctx))
	s.activate(w, ctx)
}

func (s *Scheduler) spawnFinal(ctx Context) {
	s.state.finalTriggered = true
	fadeIn := s.cfg.Final.FadeIn
	if fadeIn <= 0 && s.cfg.TotalDuration > 0 {
		fadeIn = time.Duration(float64(s.cfg.TotalDuration) * s.cfg.WindowRatio * s.cfg.FadeInRatio)
	}
	maxOpacity := s.cfg.Final.MaxOpacity
	if maxOpacity <= 0 {
		maxOpacity = s.cfg.MaxOpacity
	}
	id := s.cfg.Final.ID
	if id == "" {
		id = "final"
	}
	w := s.newWhisper(id, s.cfg.Final.Text, KindFinal, Envelope{FadeIn: fadeIn}, maxOpacity)
	w.IsFinal = true

	spread := (s.rng.Float64()*2 - 1) * s.cfg.Final.HorizontalSpread * ctx.ViewportWidth
	yRatio := s.cfg.Final.PreferredYRatio
	if yRatio <= 0 {
		yRatio = s.cfg.Frame.BaselineYRatio
	}
	pref := Point{X: ctx.ViewportWidth/2 + spread, Y: ctx.ViewportHeight * yRatio}
	s.place(w, ctx, pref)
	s.activate(w, ctx)
}

func (s *Scheduler) spawnDebug(ctx Context) {
	d := s.cfg.Debug.Duration
	env := Envelope{
		FadeIn:  d / 5,
		Hold:    d * 2 / 5,
		FadeOut: d - d/5 - d*2/5,
	}
	text := s.cfg.Debug.Text
	if text == "" {
		text = "debug whisper"
	}
	w := s.newWhisper("debug", text, KindDebug, env, s.cfg.Debug.MaxOpacity)
	s.place(w, ctx, s.baseline(ctx))
	s.activate(w, ctx)
}

func (s *Scheduler) newWhisper(id, text string, kind Kind, env Envelope, maxOpacity float64) *Whisper {
	s.state.spawned++
	return &Whisper{
		ID:         fmt.Sprintf("%s#%d", id, s.state.spawned),
		Text:       text,
		Kind:       kind,
		FadeIn:     env.FadeIn,
		Hold:       env.Hold,
		FadeOut:    env.FadeOut,
		MaxOpacity: maxOpacity,
		Seed:       s.rng.Float64() * 2 * math.Pi,
	}
}

// preferredPosition picks a slot anchor different from the previous pick
func (s *Scheduler) preferredPosition(w *Whisper, ctx Context) Point {
	n := len(s.cfg.Slots)
	if n == 0 {
		return s.baseline(ctx)
	}
	idx := 0
	switch {
	case n == 1:
	case s.state.lastSlot < 0:
		idx = s.rng.Intn(n)
	default:
		// Draw from the n-1 slots other than the last pick
		idx = s.rng.Intn(n - 1)
		if idx >= s.state.lastSlot {
			idx++
		}
	}
	s.state.lastSlot = idx
	slot := s.cfg.Slots[idx]
	w.Slot = slot.ID
	return Point{X: slot.AnchorX * ctx.ViewportWidth, Y: slot.AnchorY * ctx.ViewportHeight}
}

// place measures the text and resolves a position outside the safe zone
func (s *Scheduler) place(w *Whisper, ctx Context, pref Point) {
	b, ok := s.measurer.Measure(w.Text, ctx.ViewportWidth)
	if !ok || !(b.Width > 0) || !(b.Height > 0) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		s.logger.Debug("whisper bounds unusable, using fallback position", "id", w.ID)
		w.Bounds = Bounds{}
		w.Position = s.fallbackPosition(ctx)
		return
	}
	w.Bounds = b
	w.Position = s.resolveSafe(pref, s.swayBounds(b), ctx)
}

// fallbackPosition places an unmeasured whisper as a point on the baseline,
// pushed off the safe zone like any measured box
func (s *Scheduler) fallbackPosition(ctx Context) Point {
	return s.resolveSafe(s.baseline(ctx), s.swayBounds(Bounds{}), ctx)
}

func (s *Scheduler) baseline(ctx Context) Point {
	y := s.cfg.Frame.BaselineYRatio
	if y <= 0 {
		y = 0.5
	}
	return Point{X: ctx.ViewportWidth / 2, Y: ctx.ViewportHeight * y}
}

// swayBounds widens b by the renderer's drift on both sides
func (s *Scheduler) swayBounds(b Bounds) Bounds {
	if d := s.cfg.Frame.Drift; d > 0 {
		b.Width += 2 * d
	}
	return b
}

// resolveSafe clamps pref into the frame and, if the box touches the safe
// zone, pushes it vertically out: away from the centre first, then the
// opposite side
func (s *Scheduler) resolveSafe(pref Point, b Bounds, ctx Context) Point {
	vw, vh := ctx.ViewportWidth, ctx.ViewportHeight
	m := s.cfg.Frame.Margin
	hw, hh := b.Width/2, b.Height/2
	minY, maxY := m+hh, vh-m-hh

	p := Point{
		X: clamp(pref.X, m+hw, vw-m-hw),
		Y: clamp(pref.Y, minY, maxY),
	}
	zone := SafeZoneFor(s.cfg.SafeZone, vw, vh)
	if !zone.Intersects(RectFromCenter(p, b)) {
		return p
	}

	gap := horizontalGap(zone.CenterX, RectFromCenter(p, b))
	need := zone.clearanceY(gap, hh) + s.cfg.Frame.Clearance
	below := Point{X: p.X, Y: zone.CenterY + need}
	above := Point{X: p.X, Y: zone.CenterY - need}

	first, second := below, above
	if p.Y < zone.CenterY {
		first, second = above, below
	}
	for _, c := range []Point{first, second} {
		if c.Y >= minY && c.Y <= maxY && !zone.Intersects(RectFromCenter(c, b)) {
			return c
		}
	}

	// Neither side fits the frame; keep the outward push clamped to the edge
	first.Y = clamp(first.Y, minY, maxY)
	return first
}

func (s *Scheduler) activate(w *Whisper, ctx Context) {
	s.active = append(s.active, w)
	if s.qa != nil {
		zone := SafeZoneFor(s.cfg.SafeZone, ctx.ViewportWidth, ctx.ViewportHeight)
		s.qa.RecordSpawn(w, zone, s.elapsed)
	}
	s.logger.Info("whisper spawned",
		"id", w.ID,
		"kind", w.Kind.String(),
		"slot", w.Slot,
		"phase", ctx.Phase.String(),
		"x", w.Position.X,
		"y", w.Position.Y,
	)
}
