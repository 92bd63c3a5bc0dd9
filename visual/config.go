// Package visual holds the value types exchanged between the coordinator and
// render targets: pulse, halo and outer field parameter bundles plus the
// golden tint.
package visual

// PulseConfig drives the inner pulse breathing
type PulseConfig struct {
	Frequency float64 // Hz, > 0
	Amplitude float64 // 0..1, scale variation around the base size
	Color     Color
}

// HaloConfig drives the halo surrounding the pulse
type HaloConfig struct {
	ScaleMultiplier float64
	Opacity         float64 // 0..1
	Variation       float64 // breathing depth multiplier
}

// FieldConfig drives the faint outer field
type FieldConfig struct {
	ScaleMultiplier float64
	Opacity         float64
	Variation       float64
}

// Tint is the golden color layered onto the core once consciousness is reached
type Tint struct {
	Color    Color
	Strength float64 // 0 disables the tint
}

// Configs bundles one resolution of all three parameter sets
// Field is nil when the phase leaves the outer field unchanged
type Configs struct {
	Pulse PulseConfig
	Halo  HaloConfig
	Field *FieldConfig
}

// Clone returns a copy whose Field pointer is not shared with c
func (c Configs) Clone() Configs {
	out := c
	if c.Field != nil {
		f := *c.Field
		out.Field = &f
	}
	return out
}
