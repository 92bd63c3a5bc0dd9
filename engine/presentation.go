// Package engine wires one presentation run: the virtual clock, the phase
// machine and coordinator, the whisper scheduler and the registered targets.
// Tick is the only entry point per frame and must be called from one goroutine.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/motus/clock"
	"github.com/lixenwraith/motus/config"
	"github.com/lixenwraith/motus/coordinator"
	"github.com/lixenwraith/motus/microevent"
	"github.com/lixenwraith/motus/orchestrator"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/status"
	"github.com/lixenwraith/motus/target"
	"github.com/lixenwraith/motus/timeline"
	"github.com/lixenwraith/motus/whisper"
)

// ErrNoTables is returned when Options carries no tables
var ErrNoTables = errors.New("engine: tables required")

// Options configure a run
type Options struct {
	Tables       *config.Tables
	Seed         int64 // 0 seeds from the current time
	DebugWhisper bool
	WhisperMode  *whisper.Mode // overrides the tables' mode
	QA           bool
	QASummaryAt  time.Duration // run time at which the QA summary is logged
	Targets      []any         // render layers, audio; registered in order
	Registry     *status.Registry
	Logger       *slog.Logger
}

// Presentation is one run from the initial phase to the terminal hold
type Presentation struct {
	ID string

	clock       *clock.Scheduler
	machine     *phase.Machine
	timeline    *timeline.Timeline
	coordinator *coordinator.Coordinator
	targets     *target.Set
	whispers    *whisper.Scheduler
	qa          *whisper.QA
	lifecycle   *Lifecycle
	logger      *slog.Logger

	qaTimer  clock.Handle
	width    int
	height   int
	paused   bool
	started  bool
	disposed bool

	metrics metrics
}

// metrics caches registry pointers so Tick writes atomics directly
type metrics struct {
	run          *status.Text
	phase        *status.Text
	elapsed      *atomicInt
	phaseElapsed *atomicInt
	tint         *status.Float
	latched      *atomicBool
	timers       *atomicInt
	micro        *atomicInt
	active       *atomicInt
	spawned      *atomicInt
	final        *atomicBool
	terminal     *atomicBool
	paused       *atomicBool
}

// New wires a presentation; nothing happens until Start
func New(opts Options) (*Presentation, error) {
	if opts.Tables == nil {
		return nil, ErrNoTables
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := opts.Registry
	if registry == nil {
		registry = status.NewRegistry()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	logger = logger.With("run", id)
	tables := opts.Tables

	machine, err := phase.New(tables.Initial, phase.All(), phase.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("phase machine: %w", err)
	}

	sched := clock.NewScheduler()
	targets := target.NewSet()
	lifecycle := NewLifecycle(logger)
	for _, t := range opts.Targets {
		targets.Register(t)
		if d, ok := t.(target.Disposer); ok {
			lifecycle.AddLayer(d)
		}
	}

	// Separate streams keep whisper placement stable when micro-event tables change
	microRng := rand.New(rand.NewSource(seed))
	whisperRng := rand.New(rand.NewSource(seed + 1))

	tl := tables.Timeline()
	coord, err := coordinator.New(coordinator.Options{
		Machine:     machine,
		Resolver:    orchestrator.New(machine, tables.Phases),
		Timeline:    tl,
		Targets:     targets,
		Clock:       sched,
		MicroEvents: microevent.NewScheduler(tables.MicroEvents, microRng, logger),
		Overrides:   tables.Overrides,
		Tint:        tables.Tint,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	lifecycle.AddCoordinator(coord)

	wcfg := tables.Whispers
	wcfg.Debug.Enabled = wcfg.Debug.Enabled || opts.DebugWhisper
	if opts.WhisperMode != nil {
		wcfg.Mode = *opts.WhisperMode
	}
	var qa *whisper.QA
	if opts.QA {
		qa = whisper.NewQA(logger)
	}
	whispers := whisper.New(wcfg, whisper.Options{
		Rand:     whisperRng,
		Measurer: whisper.CellMeasurer{MaxWidth: tables.MaxTextWidth, LineHeight: 1},
		QA:       qa,
		Logger:   logger,
	})

	p := &Presentation{
		ID:          id,
		clock:       sched,
		machine:     machine,
		timeline:    tl,
		coordinator: coord,
		targets:     targets,
		whispers:    whispers,
		qa:          qa,
		lifecycle:   lifecycle,
		logger:      logger,
		metrics:     newMetrics(registry),
	}
	p.metrics.run.Store(id)

	if qa != nil {
		at := opts.QASummaryAt
		if at <= 0 {
			at = time.Minute
		}
		p.qaTimer = sched.After(at, func() {
			p.qaTimer = 0
			qa.LogSummary()
		})
	}

	logger.Info("presentation created",
		"seed", seed,
		"initial", tables.Initial,
		"whisper_mode", wcfg.Mode,
		"run_duration", tables.RunDuration(),
		"targets", targets.Len(),
	)
	return p, nil
}

// Start applies the initial phase; only the first call has effect
func (p *Presentation) Start(width, height int) {
	if p.started || p.disposed {
		return
	}
	p.started = true
	p.Resize(width, height)
	p.coordinator.Bootstrap()
	p.publish()
}

// Tick advances the run by dt: timers first, then target animation, then whispers
// A paused presentation ignores dt
func (p *Presentation) Tick(dt time.Duration) {
	if !p.started || p.disposed || p.paused {
		return
	}
	if dt < 0 {
		dt = 0
	}
	p.clock.Advance(dt)
	p.targets.Update(dt)

	snap := p.coordinator.Snapshot()
	p.whispers.Update(dt, whisper.Context{
		Phase:          snap.Phase,
		PhaseElapsed:   p.clock.Now() - snap.EnteredAt,
		ViewportWidth:  float64(p.width),
		ViewportHeight: float64(p.height),
	})
	p.publish()
}

// Resize forwards viewport changes to targets
func (p *Presentation) Resize(width, height int) {
	p.width, p.height = width, height
	p.targets.Resize(width, height)
}

// SetPaused freezes timers and animation
func (p *Presentation) SetPaused(paused bool) {
	if p.paused == paused {
		return
	}
	p.paused = paused
	p.metrics.paused.Store(paused)
	p.logger.Debug("presentation paused", "paused", paused, "elapsed", p.clock.Now())
}

// Paused reports the pause state
func (p *Presentation) Paused() bool {
	return p.paused
}

// Active returns the live whispers for rendering
func (p *Presentation) Active() []whisper.Whisper {
	return p.whispers.Active()
}

// Phase is the current phase
func (p *Presentation) Phase() phase.Phase {
	return p.machine.Current()
}

// Snapshot is the coordinator's most recent entry
func (p *Presentation) Snapshot() coordinator.Snapshot {
	return p.coordinator.Snapshot()
}

// Elapsed is virtual run time
func (p *Presentation) Elapsed() time.Duration {
	return p.clock.Now()
}

// Whispers exposes the scheduler for inspection
func (p *Presentation) Whispers() *whisper.Scheduler {
	return p.whispers
}

// QA returns the recorder, nil unless enabled
func (p *Presentation) QA() *whisper.QA {
	return p.qa
}

// PendingTimers counts armed timers on the run clock
func (p *Presentation) PendingTimers() int {
	return p.clock.Pending()
}

// Dispose tears the run down; safe to call repeatedly
func (p *Presentation) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.qaTimer != 0 {
		p.clock.Cancel(p.qaTimer)
		p.qaTimer = 0
	}
	if p.qa != nil {
		p.qa.LogSummary()
	}
	p.lifecycle.DisposeAll(p.clock.Pending)
	p.publish()
	p.logger.Info("presentation disposed", "elapsed", p.clock.Now())
}

func (p *Presentation) publish() {
	snap := p.coordinator.Snapshot()
	m := &p.metrics
	m.phase.Store(snap.Phase.String())
	m.elapsed.Store(p.clock.Now().Milliseconds())
	m.phaseElapsed.Store((p.clock.Now() - snap.EnteredAt).Milliseconds())
	m.tint.Set(snap.Tint.Strength)
	m.latched.Store(snap.Latched)
	m.timers.Store(int64(p.clock.Pending()))
	m.micro.Store(int64(snap.Overrides))
	m.active.Store(int64(len(p.whispers.Active())))
	m.spawned.Store(int64(p.whispers.Spawned()))
	m.final.Store(p.whispers.FinalTriggered())
	m.terminal.Store(p.timeline.IsTerminal(snap.Phase))
	m.paused.Store(p.paused)
}
