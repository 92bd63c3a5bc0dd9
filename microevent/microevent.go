// Package microevent schedules rare, brief perturbations of the phase
// configuration. Each event applies the baseline plus the policy deltas, then
// restores the untouched baseline after the event duration.
package microevent

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/lixenwraith/motus/clock"
	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/visual"
)

// MaxEventsPerPhase caps the events scheduled on one phase entry
const MaxEventsPerPhase = 3

// minFrequency keeps a perturbed pulse strictly positive
const minFrequency = 0.01

// Policy describes the micro-events of one phase
type Policy struct {
	MaxEventsPerCycle int
	MinOffset         time.Duration
	MaxOffset         time.Duration
	EventDuration     time.Duration

	PulseAmpDelta       float64
	PulseFreqDelta      float64
	HaloOpacityDelta    float64
	HaloScaleDelta      float64
	FieldVariationDelta float64
}

// EventCount is the number of events one phase entry schedules
func (p Policy) EventCount() int {
	if p.MaxEventsPerCycle <= 0 {
		return 0
	}
	return max(1, min(MaxEventsPerPhase, p.MaxEventsPerCycle))
}

// Hooks receive the perturbed and restored configurations
type Hooks struct {
	ApplyOverride func(visual.Configs)
	RestoreBase   func(visual.Configs)
}

// Scheduler arms micro-event timers from per-phase policies
type Scheduler struct {
	policies map[phase.Phase]Policy
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewScheduler creates a scheduler; nil rng seeds from the current time
func NewScheduler(policies map[phase.Phase]Policy, rng *rand.Rand, logger *slog.Logger) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	copied := make(map[phase.Phase]Policy, len(policies))
	for p, pol := range policies {
		copied[p] = pol
	}
	return &Scheduler{policies: copied, rng: rng, logger: logger}
}

// Schedule arms the events for an entry into p, relative to now
// Start and end handles are recorded in registry so the caller can cancel them
// in bulk; returns the number of events armed
func (s *Scheduler) Schedule(p phase.Phase, base visual.Configs, hooks Hooks, registry *clock.Group) int {
	pol, ok := s.policies[p]
	if !ok {
		return 0
	}
	count := pol.EventCount()
	if count == 0 {
		return 0
	}

	base = base.Clone()
	for i := 0; i < count; i++ {
		offset := s.randomOffset(pol)
		registry.After(offset, func() {
			s.logger.Debug("micro-event start", "phase", p, "duration", pol.EventDuration)
			if hooks.ApplyOverride != nil {
				hooks.ApplyOverride(BuildOverride(base, pol))
			}
			registry.After(pol.EventDuration, func() {
				if hooks.RestoreBase != nil {
					hooks.RestoreBase(base.Clone())
				}
			})
		})
	}
	return count
}

// ClearAll cancels every pending timer in registry
func ClearAll(registry *clock.Group) {
	if registry == nil {
		return
	}
	registry.CancelAll()
}

func (s *Scheduler) randomOffset(pol Policy) time.Duration {
	lo, hi := pol.MinOffset, pol.MaxOffset
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int63n(int64(hi-lo)+1))
}

// BuildOverride applies the policy deltas to base
// Colors pass through; amplitude and opacity stay in [0,1] and frequency stays positive
func BuildOverride(base visual.Configs, pol Policy) visual.Configs {
	out := base.Clone()

	out.Pulse.Amplitude = visual.Clamp01(base.Pulse.Amplitude + pol.PulseAmpDelta)
	out.Pulse.Frequency = max(minFrequency, base.Pulse.Frequency+pol.PulseFreqDelta)

	out.Halo.Opacity = visual.Clamp01(base.Halo.Opacity + pol.HaloOpacityDelta)
	out.Halo.ScaleMultiplier = base.Halo.ScaleMultiplier + pol.HaloScaleDelta

	if out.Field != nil {
		out.Field.Variation = base.Field.Variation + pol.FieldVariationDelta
	}
	return out
}
