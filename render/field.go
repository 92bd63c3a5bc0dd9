package render

import (
	"math"
	"time"

	"github.com/lixenwraith/motus/visual"
)

const (
	fieldRate         = 0.35 // the field breathes slower than the core
	fieldAmpScale     = 0.55
	fieldBaseRadius   = 0.62
	fieldBaseScale    = 1.45
	fieldScaleSwing   = 1.15
	fieldOpacitySwing = 0.025
	fieldGain         = 2.0
	fieldOpacityGain  = 3.0
	fieldBand         = 0.86 // ring centre as a fraction of radius
	fieldBandWidth    = 0.1
	fieldNoiseScale   = 1.5
	fieldNoiseSpeed   = 0.15
	fieldNoiseDepth   = 0.35
	fieldCoolMix      = 0.7
	fieldCool         = visual.Color(0x7f8fa6)
	fieldTintMax      = 0.4
	fieldDim          = 0.25
	fieldBoostMax     = 0.18
	fieldBoostPerTint = 0.12
)

// FieldLayer draws the faint outer ring
type FieldLayer struct {
	osc      oscillator
	cfg      visual.FieldConfig
	tint     visual.Tint
	noise    *Noise
	elapsed  float64 // seconds
	disposed bool
}

// NewFieldLayer creates the field at the initial configuration
func NewFieldLayer(noise *Noise) *FieldLayer {
	return &FieldLayer{
		osc:   newOscillator(fieldRate),
		cfg:   visual.FieldConfig{ScaleMultiplier: 1.0, Opacity: 0.035, Variation: 0.35},
		noise: noise,
	}
}

// ApplyPulseConfig starts a transition toward cfg
func (l *FieldLayer) ApplyPulseConfig(cfg visual.PulseConfig) {
	l.osc.apply(cfg)
}

// ApplyOuterFieldConfig replaces the field parameters
func (l *FieldLayer) ApplyOuterFieldConfig(cfg visual.FieldConfig) {
	l.cfg = cfg
}

// SetGoldenTint sets the golden overlay
func (l *FieldLayer) SetGoldenTint(t visual.Tint) {
	l.tint = t
}

// Update advances the pulse and noise time
func (l *FieldLayer) Update(dt time.Duration) {
	l.osc.update(dt)
	l.elapsed += dt.Seconds()
}

// Dispose hides the layer
func (l *FieldLayer) Dispose() {
	l.disposed = true
}

// IsVisible implements VisibilityToggle
func (l *FieldLayer) IsVisible() bool {
	return !l.disposed
}

// Config returns the field parameters in effect
func (l *FieldLayer) Config() visual.FieldConfig {
	return l.cfg
}

// Color is the field color after cooling, golden tint and dimming
func (l *FieldLayer) Color() visual.Color {
	c := visual.Blend(l.osc.color, fieldCool, fieldCoolMix)
	if l.tint.Strength > 0 {
		c = visual.Blend(c, l.tint.Color, visual.Clamp(l.tint.Strength, 0, fieldTintMax))
	}
	return visual.Blend(c, 0x000000, fieldDim)
}

// Render draws a noisy ring well outside the core
func (l *FieldLayer) Render(ctx Context, buf *Buffer) {
	s := l.osc.value()
	amp := l.osc.amp * fieldAmpScale
	scale := fieldBaseScale*l.cfg.ScaleMultiplier + s*amp*fieldScaleSwing*l.cfg.Variation*fieldGain
	radius := fieldBaseRadius * scale
	if radius <= 0 {
		return
	}

	opacity := visual.Clamp01(l.cfg.Opacity + s*fieldOpacitySwing*l.cfg.Variation)
	boost := visual.Clamp(l.tint.Strength*fieldBoostPerTint, 0, fieldBoostMax)
	alpha := visual.Clamp01((opacity + boost) * fieldOpacityGain)
	color := FromColor(l.Color())

	center := fieldBand * radius
	width := fieldBandWidth * radius
	t := l.elapsed * fieldNoiseSpeed
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			d, angle := ctx.Distance(x, y)
			if d < radius*0.6 || d > radius*1.2 {
				continue
			}
			wobble := 1.0
			if l.noise != nil {
				wobble += l.noise.Ring(angle, t, fieldNoiseScale) * fieldNoiseDepth * l.cfg.Variation
			}
			z := (d - center) / width
			band := math.Exp(-z*z) * wobble
			buf.SetBg(x, y, color, BlendScreen, visual.Clamp01(alpha*band))
		}
	}
}
