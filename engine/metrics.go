package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/motus/status"
)

type (
	atomicInt  = atomic.Int64
	atomicBool = atomic.Bool
)

func newMetrics(r *status.Registry) metrics {
	return metrics{
		run:          r.Strings.Get(status.KeyRunID),
		phase:        r.Strings.Get(status.KeyPhase),
		elapsed:      r.Ints.Get(status.KeyElapsedMS),
		phaseElapsed: r.Ints.Get(status.KeyPhaseElapsedMS),
		tint:         r.Floats.Get(status.KeyTint),
		latched:      r.Bools.Get(status.KeyTintLatched),
		timers:       r.Ints.Get(status.KeyPendingTimers),
		micro:        r.Ints.Get(status.KeyMicroOverrides),
		active:       r.Ints.Get(status.KeyWhispersActive),
		spawned:      r.Ints.Get(status.KeyWhispersSpawned),
		final:        r.Bools.Get(status.KeyFinalTriggered),
		terminal:     r.Bools.Get(status.KeyTerminal),
		paused:       r.Bools.Get(status.KeyPaused),
	}
}
