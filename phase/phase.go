// Package phase defines the six symbolic narrative phases and the state
// machine that owns the single active one.
package phase

import "fmt"

// Phase is one symbolic narrative state
type Phase uint8

const (
	// LivingInertia is the near-motionless opening state
	LivingInertia Phase = iota
	// FirstPulse is the first visible movement
	FirstPulse
	// InnerDrift is a more active internal displacement
	InnerDrift
	// EmergingRhythm is a present, defined but contained pulse
	EmergingRhythm
	// OpeningDistortion is controlled tension at the limit
	OpeningDistortion
	// TenseQuiet is the settled terminal state
	TenseQuiet

	phaseCount
)

// Initial is the phase every run starts in
const Initial = LivingInertia

var phaseNames = [phaseCount]string{
	LivingInertia:     "living_inertia",
	FirstPulse:        "first_pulse",
	InnerDrift:        "inner_drift",
	EmergingRhythm:    "emerging_rhythm",
	OpeningDistortion: "opening_distortion",
	TenseQuiet:        "tense_quiet",
}

// String returns the phase identifier used in configuration and logs
func (p Phase) String() string {
	if p.Valid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Valid reports whether p is one of the enumerated phases
func (p Phase) Valid() bool {
	return p < phaseCount
}

// All returns every phase in narrative order
func All() []Phase {
	out := make([]Phase, 0, phaseCount)
	for p := Phase(0); p < phaseCount; p++ {
		out = append(out, p)
	}
	return out
}

// Parse resolves a phase identifier
func Parse(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return Phase(p), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so phases decode directly from TOML
func (p *Phase) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
