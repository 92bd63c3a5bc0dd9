// Package audio renders the pulse as a quiet drone through beep.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/motus/visual"
)

// PulseTone is a presentation target that follows pulse and tint with sound
// Safe to configure from the frame loop while the speaker goroutine streams
type PulseTone struct {
	mu          sync.Mutex
	cfg         Config
	drone       *drone
	volume      *effects.Volume
	ctrl        *beep.Ctrl
	initialized bool
	disposed    bool
}

// NewPulseTone creates a tone; nothing plays until Start
func NewPulseTone(cfg Config) *PulseTone {
	d := newDrone(cfg)
	vol := &effects.Volume{Streamer: d, Base: 2}
	setLevel(vol, cfg.MasterVolume)
	return &PulseTone{
		cfg:    cfg,
		drone:  d,
		volume: vol,
		ctrl:   &beep.Ctrl{Streamer: vol},
	}
}

// Start opens the speaker and begins streaming
func (t *PulseTone) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized || t.disposed {
		return nil
	}
	rate := beep.SampleRate(t.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(t.ctrl)
	t.initialized = true
	return nil
}

// Streamer exposes the volume-scaled output for offline rendering
func (t *PulseTone) Streamer() beep.Streamer {
	return t.ctrl
}

// ApplyPulseConfig retunes the breathing
func (t *PulseTone) ApplyPulseConfig(cfg visual.PulseConfig) {
	t.drone.set(func(p *droneParams) {
		p.pulseHz = cfg.Frequency
		p.amplitude = cfg.Amplitude
	})
}

// SetGoldenTint warms the timbre
func (t *PulseTone) SetGoldenTint(tint visual.Tint) {
	t.drone.set(func(p *droneParams) {
		p.warmth = visual.Clamp01(tint.Strength)
	})
}

// SetPaused silences output without losing phase
func (t *PulseTone) SetPaused(paused bool) {
	if t.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	t.ctrl.Paused = paused
}

// Dispose stops the stream and closes the speaker
func (t *PulseTone) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}
	t.disposed = true
	t.drone.stop()
	if t.initialized {
		speaker.Clear()
		speaker.Close()
		t.initialized = false
	}
}

// SetVolume changes the output level in [0,1]; 0 mutes
func (t *PulseTone) SetVolume(level float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	setLevel(t.volume, level)
}

// setLevel maps a linear level onto the effect's base-2 exponent
func setLevel(v *effects.Volume, level float64) {
	level = visual.Clamp01(level)
	if level == 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(level), false
}
