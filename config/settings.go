package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the runtime switches of the terminal driver
// Flags override these after they are read from the environment
type Settings struct {
	Debug        bool          `env:"MOTUS_DEBUG"`
	LogFile      string        `env:"MOTUS_LOG_FILE"      envDefault:"logs/motus.log"`
	TablesPath   string        `env:"MOTUS_TABLES"`
	Seed         int64         `env:"MOTUS_SEED"`
	FrameRate    int           `env:"MOTUS_FPS"           envDefault:"30"`
	Audio        bool          `env:"MOTUS_AUDIO"`
	Volume       float64       `env:"MOTUS_VOLUME"        envDefault:"0.25"`
	QA           bool          `env:"MOTUS_QA"`
	QASummaryAt  time.Duration `env:"MOTUS_QA_SUMMARY_AT" envDefault:"60s"`
	Diagnostics  bool          `env:"MOTUS_DIAG"`
	DebugWhisper bool          `env:"MOTUS_DEBUG_WHISPER"`
	WhisperMode  string        `env:"MOTUS_WHISPER_MODE"`
}

// LoadSettings reads Settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges that env tags cannot express
func (s Settings) Validate() error {
	if s.FrameRate < 1 || s.FrameRate > 240 {
		return fmt.Errorf("frame rate must be in [1,240], got %d", s.FrameRate)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("volume must be in [0,1], got %v", s.Volume)
	}
	if s.QASummaryAt <= 0 {
		return fmt.Errorf("qa summary delay must be > 0, got %v", s.QASummaryAt)
	}
	if _, err := ParseMode(s.WhisperMode); err != nil {
		return err
	}
	return nil
}

// FrameInterval is the tick period implied by FrameRate
func (s Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}
