package main

import (
	"github.com/spf13/pflag"

	"github.com/lixenwraith/motus/config"
)

// parseFlags layers command-line flags over environment settings
func parseFlags(s config.Settings, args []string) (config.Settings, error) {
	fs := pflag.NewFlagSet("motus", pflag.ContinueOnError)
	fs.BoolVar(&s.Debug, "debug", s.Debug, "write debug logs to the log file")
	fs.StringVar(&s.LogFile, "log-file", s.LogFile, "log file path used with --debug")
	fs.StringVarP(&s.TablesPath, "tables", "t", s.TablesPath, "presentation tables TOML file")
	fs.Int64Var(&s.Seed, "seed", s.Seed, "random seed, 0 for time based")
	fs.IntVar(&s.FrameRate, "fps", s.FrameRate, "frames per second")
	fs.BoolVar(&s.Audio, "audio", s.Audio, "play the pulse drone")
	fs.Float64Var(&s.Volume, "volume", s.Volume, "drone volume in [0,1]")
	fs.BoolVar(&s.QA, "qa", s.QA, "record whisper placement and log a summary")
	fs.DurationVar(&s.QASummaryAt, "qa-summary-at", s.QASummaryAt, "run time at which the QA summary is logged")
	fs.BoolVar(&s.Diagnostics, "diag", s.Diagnostics, "show the diagnostics line")
	fs.BoolVar(&s.DebugWhisper, "debug-whisper", s.DebugWhisper, "show a debug whisper at start")
	fs.StringVar(&s.WhisperMode, "whisper-mode", s.WhisperMode, "whisper trigger mode: phase or progress")

	if err := fs.Parse(args); err != nil {
		return config.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}
