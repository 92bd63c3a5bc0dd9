package render

import (
	"time"

	"github.com/lixenwraith/motus/visual"
)

const (
	coreRadius  = 0.22 // scene units
	coreGain    = 3.0  // display gain on the pulse amplitude
	coreTintMax = 0.5
)

// CoreLayer draws the breathing inner pulse
type CoreLayer struct {
	osc      oscillator
	tint     visual.Tint
	width    int
	height   int
	disposed bool
}

// NewCoreLayer creates the core at the initial pulse
func NewCoreLayer() *CoreLayer {
	return &CoreLayer{osc: newOscillator(1)}
}

// ApplyPulseConfig starts a transition toward cfg
func (l *CoreLayer) ApplyPulseConfig(cfg visual.PulseConfig) {
	l.osc.apply(cfg)
}

// SetGoldenTint sets the golden overlay
func (l *CoreLayer) SetGoldenTint(t visual.Tint) {
	l.tint = t
}

// Update advances the pulse
func (l *CoreLayer) Update(dt time.Duration) {
	l.osc.update(dt)
}

// OnResize records the viewport
func (l *CoreLayer) OnResize(width, height int) {
	l.width, l.height = width, height
}

// Dispose hides the layer
func (l *CoreLayer) Dispose() {
	l.disposed = true
}

// IsVisible implements VisibilityToggle
func (l *CoreLayer) IsVisible() bool {
	return !l.disposed
}

// Radius is the current core radius in scene units
func (l *CoreLayer) Radius() float64 {
	return coreRadius * (1 + l.osc.value()*l.osc.amp*coreGain)
}

// Color is the current core color including the golden tint
func (l *CoreLayer) Color() visual.Color {
	return visual.Blend(l.osc.color, l.tint.Color, visual.Clamp(l.tint.Strength, 0, coreTintMax))
}

// Render draws a disc with a soft edge
func (l *CoreLayer) Render(ctx Context, buf *Buffer) {
	r := l.Radius()
	color := FromColor(l.Color())
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			d, _ := ctx.Distance(x, y)
			if d > r*1.25 {
				continue
			}
			a := 1 - visual.SmoothStep((d-r*0.75)/(r*0.5))
			buf.SetBg(x, y, color, BlendAlpha, a)
		}
	}
}
