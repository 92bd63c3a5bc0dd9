package audio

import "time"

// Config shapes the pulse drone
type Config struct {
	SampleRate   int
	MasterVolume float64 // 0..1
	CarrierHz    float64
	GlideSeconds float64 // time constant for parameter changes
	FadeIn       time.Duration
}

// DefaultConfig returns a quiet low drone
func DefaultConfig() Config {
	return Config{
		SampleRate:   48000,
		MasterVolume: 0.25,
		CarrierHz:    110,
		GlideSeconds: 1.5,
		FadeIn:       3 * time.Second,
	}
}
