package render

import (
	"math"
	"time"

	"github.com/lixenwraith/motus/visual"
)

// PulseTransitionDuration is how long a layer takes to reach a new pulse config
const PulseTransitionDuration = 5500 * time.Millisecond

// oscillator tracks a layer's own view of the pulse, easing linearly toward
// each newly applied config and accumulating phase so frequency changes
// never jump the wave
type oscillator struct {
	rate float64 // multiplier on the pulse frequency

	freq  float64
	amp   float64
	color visual.Color

	startFreq, startAmp   float64
	startColor            visual.Color
	targetFreq, targetAmp float64
	targetColor           visual.Color

	transition    time.Duration
	transitioning bool
	initialized   bool

	phase float64 // radians, wrapped to [0, 2π)
}

func newOscillator(rate float64) oscillator {
	cfg := visual.PulseConfig{Frequency: 0.12, Amplitude: 0.02, Color: 0xcfcfcf}
	o := oscillator{rate: rate}
	o.freq, o.amp, o.color = cfg.Frequency, cfg.Amplitude, cfg.Color
	return o
}

func (o *oscillator) apply(cfg visual.PulseConfig) {
	if !o.initialized {
		o.initialized = true
		o.freq, o.amp, o.color = cfg.Frequency, cfg.Amplitude, cfg.Color
		o.targetFreq, o.targetAmp, o.targetColor = cfg.Frequency, cfg.Amplitude, cfg.Color
		return
	}
	o.startFreq, o.startAmp, o.startColor = o.freq, o.amp, o.color
	o.targetFreq, o.targetAmp, o.targetColor = cfg.Frequency, cfg.Amplitude, cfg.Color
	o.transition = 0
	o.transitioning = true
}

func (o *oscillator) update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if o.transitioning {
		o.transition += dt
		t := visual.Clamp01(float64(o.transition) / float64(PulseTransitionDuration))
		o.freq = visual.Lerp(o.startFreq, o.targetFreq, t)
		o.amp = visual.Lerp(o.startAmp, o.targetAmp, t)
		o.color = visual.Blend(o.startColor, o.targetColor, t)
		if t >= 1 {
			o.freq, o.amp, o.color = o.targetFreq, o.targetAmp, o.targetColor
			o.transitioning = false
		}
	}
	o.phase = math.Mod(o.phase+2*math.Pi*o.freq*o.rate*dt.Seconds(), 2*math.Pi)
}

// value is the current wave sample in [-1, 1]
func (o *oscillator) value() float64 {
	return math.Sin(o.phase)
}
