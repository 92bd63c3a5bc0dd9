package render

import (
	"time"

	"github.com/lixenwraith/motus/visual"
)

const (
	haloBaseRadius   = 0.42
	haloBaseScale    = 0.96
	haloScaleSwing   = 1.4
	haloOpacitySwing = 0.05
	haloGain         = 2.0
	haloOpacityGain  = 2.2
	haloCoolMix      = 0.65
	haloCool         = visual.Color(0x9fb3d1)
)

// HaloLayer draws the glow around the core
type HaloLayer struct {
	osc      oscillator
	cfg      visual.HaloConfig
	disposed bool
}

// NewHaloLayer creates the halo at the initial configuration
func NewHaloLayer() *HaloLayer {
	return &HaloLayer{
		osc: newOscillator(1),
		cfg: visual.HaloConfig{ScaleMultiplier: 0.96, Opacity: 0.1, Variation: 0.6},
	}
}

// ApplyPulseConfig starts a transition toward cfg
func (l *HaloLayer) ApplyPulseConfig(cfg visual.PulseConfig) {
	l.osc.apply(cfg)
}

// ApplyHaloConfig replaces the halo parameters
func (l *HaloLayer) ApplyHaloConfig(cfg visual.HaloConfig) {
	l.cfg = cfg
}

// Update advances the pulse
func (l *HaloLayer) Update(dt time.Duration) {
	l.osc.update(dt)
}

// Dispose hides the layer
func (l *HaloLayer) Dispose() {
	l.disposed = true
}

// IsVisible implements VisibilityToggle
func (l *HaloLayer) IsVisible() bool {
	return !l.disposed
}

// Config returns the halo parameters in effect
func (l *HaloLayer) Config() visual.HaloConfig {
	return l.cfg
}

// Opacity is the current breathing opacity before display gain
func (l *HaloLayer) Opacity() float64 {
	return visual.Clamp01(l.cfg.Opacity + l.osc.value()*haloOpacitySwing*l.cfg.Variation)
}

// Render draws a radial glow that swells with the pulse
func (l *HaloLayer) Render(ctx Context, buf *Buffer) {
	s := l.osc.value()
	scale := haloBaseScale*l.cfg.ScaleMultiplier + s*l.osc.amp*haloScaleSwing*l.cfg.Variation*haloGain
	radius := haloBaseRadius * scale
	if radius <= 0 {
		return
	}
	opacity := visual.Clamp01(l.Opacity() * haloOpacityGain)
	color := FromColor(visual.Blend(l.osc.color, haloCool, haloCoolMix))

	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			d, _ := ctx.Distance(x, y)
			if d >= radius {
				continue
			}
			glow := 1 - visual.SmoothStep(d/radius)
			buf.SetBg(x, y, color, BlendScreen, opacity*glow)
		}
	}
}
