// Package coordinator reacts to phase transitions: it resolves the phase's
// visual configuration, derives the golden tint, pushes everything to the
// registered targets, re-arms micro-events and arms the next timeline edge.
package coordinator

import (
	"errors"
	"log/slog"
	"time"

	"github.com/lixenwraith/motus/clock"
	"github.com/lixenwraith/motus/microevent"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/target"
	"github.com/lixenwraith/motus/timeline"
	"github.com/lixenwraith/motus/visual"
)

// ErrMissingDependency is returned when a required option is nil
var ErrMissingDependency = errors.New("coordinator: missing dependency")

// Resolver resolves phase configuration
type Resolver interface {
	Resolve(p phase.Phase) visual.Configs
}

// Override replaces the resolved pulse and/or halo for one phase
type Override struct {
	Pulse *visual.PulseConfig
	Halo  *visual.HaloConfig
}

// Options wires a Coordinator
type Options struct {
	Machine     *phase.Machine
	Resolver    Resolver
	Timeline    *timeline.Timeline
	Targets     *target.Set
	Clock       *clock.Scheduler
	MicroEvents *microevent.Scheduler // optional
	Overrides   map[phase.Phase]Override
	Tint        TintSettings
	Logger      *slog.Logger
}

// Snapshot is the state of the most recent phase entry
type Snapshot struct {
	Phase     phase.Phase
	EnteredAt time.Duration // scheduler time of the entry
	Configs   visual.Configs
	Tint      visual.Tint
	Latched   bool
	Entries   int
	Overrides int // micro-event overrides applied during the run
}

// Coordinator owns the timeline timer and micro-event timers of a run
type Coordinator struct {
	machine   *phase.Machine
	resolver  Resolver
	timeline  *timeline.Timeline
	targets   *target.Set
	clock     *clock.Scheduler
	micro     *microevent.Scheduler
	overrides map[phase.Phase]Override
	tint      TintSettings
	logger    *slog.Logger

	sub         phase.Subscription
	advance     clock.Handle
	microTimers *clock.Group
	latched     bool
	disposed    bool
	snap        Snapshot
}

// New creates a coordinator subscribed to the machine
// Call Bootstrap once afterwards to apply the initial phase
func New(opts Options) (*Coordinator, error) {
	if opts.Machine == nil || opts.Resolver == nil || opts.Timeline == nil || opts.Clock == nil {
		return nil, ErrMissingDependency
	}
	targets := opts.Targets
	if targets == nil {
		targets = target.NewSet()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Coordinator{
		machine:     opts.Machine,
		resolver:    opts.Resolver,
		timeline:    opts.Timeline,
		targets:     targets,
		clock:       opts.Clock,
		micro:       opts.MicroEvents,
		overrides:   opts.Overrides,
		tint:        opts.Tint,
		logger:      logger,
		microTimers: clock.NewGroup(opts.Clock),
	}
	c.sub = c.machine.Subscribe(c.handleEntry)
	return c, nil
}

// Bootstrap performs the entry into the machine's current phase
func (c *Coordinator) Bootstrap() {
	p := c.machine.Current()
	c.handleEntry(p, p)
}

// Snapshot returns the most recent entry state
func (c *Coordinator) Snapshot() Snapshot {
	s := c.snap
	s.Configs = s.Configs.Clone()
	return s
}

// Latched reports whether a consciousness phase has been reached
func (c *Coordinator) Latched() bool {
	return c.latched
}

// PendingTimers returns armed timeline and micro-event timers owned by the coordinator
func (c *Coordinator) PendingTimers() int {
	n := c.microTimers.Pending()
	if c.advance != 0 {
		n++
	}
	return n
}

// Dispose unsubscribes and cancels every timer; safe to call repeatedly
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.sub.Cancel()
	c.cancelAdvance()
	microevent.ClearAll(c.microTimers)
	c.logger.Debug("coordinator disposed", "phase", c.snap.Phase)
}

func (c *Coordinator) handleEntry(prev, next phase.Phase) {
	if c.disposed {
		return
	}

	configs := c.resolve(next)

	strength, latched := GoldenStrength(c.tint, next, configs.Pulse.Amplitude, c.latched)
	c.latched = latched
	tint := visual.Tint{Color: c.tint.Color, Strength: strength}

	c.targets.ApplyConfigs(configs)
	c.targets.SetTint(tint)

	c.snap = Snapshot{
		Phase:     next,
		EnteredAt: c.clock.Now(),
		Configs:   configs.Clone(),
		Tint:      tint,
		Latched:   c.latched,
		Entries:   c.snap.Entries + 1,
		Overrides: c.snap.Overrides,
	}

	microevent.ClearAll(c.microTimers)
	if c.micro != nil {
		c.micro.Schedule(next, configs, microevent.Hooks{
			ApplyOverride: func(o visual.Configs) {
				c.snap.Overrides++
				c.targets.ApplyConfigs(o)
			},
			RestoreBase: c.targets.ApplyConfigs,
		}, c.microTimers)
	}

	c.cancelAdvance()
	if edge, ok := c.timeline.FindEdge(next); ok {
		c.advance = c.clock.After(edge.Delay, func() {
			c.advance = 0
			c.machine.SetState(edge.To)
		})
	}

	c.logger.Info("phase entered",
		"from", prev,
		"to", next,
		"frequency", configs.Pulse.Frequency,
		"amplitude", configs.Pulse.Amplitude,
		"tint", strength,
	)
}

func (c *Coordinator) resolve(p phase.Phase) visual.Configs {
	configs := c.resolver.Resolve(p)
	if o, ok := c.overrides[p]; ok {
		if o.Pulse != nil {
			configs.Pulse = *o.Pulse
		}
		if o.Halo != nil {
			configs.Halo = *o.Halo
		}
	}
	return configs
}

func (c *Coordinator) cancelAdvance() {
	if c.advance != 0 {
		c.clock.Cancel(c.advance)
		c.advance = 0
	}
}
