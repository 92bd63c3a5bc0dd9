package coordinator

import (
	"slices"

	"github.com/lixenwraith/motus/phase"
	"github.com/lixenwraith/motus/visual"
)

// TintSettings shapes the golden tint curve
type TintSettings struct {
	Color visual.Color

	// Entering any of these latches the tint on for the rest of the run
	ConsciousnessPhases []phase.Phase
	// Settled phases use SettledMinIntensity as the floor
	SettledPhases []phase.Phase

	// Pulse amplitude envelope normalized into [0,1]
	AmplitudeMin float64
	AmplitudeMax float64

	MinIntensity        float64
	MaxIntensity        float64
	SettledMinIntensity float64
}

// GoldenStrength derives tint strength for an entry into p with the given amplitude
// latched is the latch state before the entry; the returned latch is the state after it
func GoldenStrength(s TintSettings, p phase.Phase, amplitude float64, latched bool) (strength float64, latch bool) {
	if !latched && !slices.Contains(s.ConsciousnessPhases, p) {
		return 0, false
	}

	var norm float64
	if span := s.AmplitudeMax - s.AmplitudeMin; span > 0 {
		norm = visual.Clamp01((amplitude - s.AmplitudeMin) / span)
	} else if amplitude >= s.AmplitudeMax {
		norm = 1
	}
	eased := norm * norm

	lo := s.MinIntensity
	if slices.Contains(s.SettledPhases, p) {
		lo = max(lo, s.SettledMinIntensity)
	}
	hi := max(lo, s.MaxIntensity)
	return visual.Lerp(lo, hi, eased), true
}
