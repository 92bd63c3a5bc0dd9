package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/motus/asset"
	"github.com/lixenwraith/motus/audio"
	"github.com/lixenwraith/motus/clock"
	"github.com/lixenwraith/motus/config"
	"github.com/lixenwraith/motus/engine"
	"github.com/lixenwraith/motus/render"
	"github.com/lixenwraith/motus/status"
	"github.com/lixenwraith/motus/whisper"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "motus: %v\n", err)
		os.Exit(2)
	}
	settings, err = parseFlags(settings, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "motus: %v\n", err)
		os.Exit(2)
	}

	logFile, logger := setupLogging(settings.LogFile, settings.Debug, os.Stderr)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(settings, logger); err != nil {
		logger.Error("run failed", "error", err)
		fmt.Fprintf(os.Stderr, "motus: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *slog.Logger) error {
	tables, err := config.LoadTablesAuto(settings.TablesPath, asset.DefaultTables)
	if err != nil {
		return err
	}
	var mode *whisper.Mode
	if settings.WhisperMode != "" {
		m, err := config.ParseMode(settings.WhisperMode)
		if err != nil {
			return err
		}
		mode = &m
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic recovery: restore the terminal before the trace is printed
	crash := func(where string, r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mMOTUS CRASHED (%s): %v\x1b[0m\n", where, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash("main", r)
		}
	}()

	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground.Tcell()))
	screen.HideCursor()
	width, height := screen.Size()

	registry := status.NewRegistry()
	noise := render.NewNoise(settings.Seed)
	core := render.NewCoreLayer()
	halo := render.NewHaloLayer()
	field := render.NewFieldLayer(noise)
	targets := []any{field, halo, core}

	var tone *audio.PulseTone
	if settings.Audio {
		acfg := audio.DefaultConfig()
		acfg.MasterVolume = settings.Volume
		tone = audio.NewPulseTone(acfg)
		if err := tone.Start(); err != nil {
			logger.Warn("audio unavailable, continuing without", "error", err)
			tone = nil
		} else {
			targets = append(targets, tone)
		}
	}

	pres, err := engine.New(engine.Options{
		Tables:       tables,
		Seed:         settings.Seed,
		DebugWhisper: settings.DebugWhisper,
		WhisperMode:  mode,
		QA:           settings.QA,
		QASummaryAt:  settings.QASummaryAt,
		Targets:      targets,
		Registry:     registry,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer pres.Dispose()

	orchestrator := render.NewOrchestrator(screen)
	orchestrator.Register(field, render.PriorityField)
	orchestrator.Register(halo, render.PriorityHalo)
	orchestrator.Register(core, render.PriorityCore)
	orchestrator.Register(render.NewWhisperLayer(pres, noise, tables.MaxTextWidth, tables.Whispers.Frame.Drift), render.PriorityWhisper)
	diag := render.NewDiagnosticsLayer(registry, status.DiagnosticKeys, settings.Diagnostics)
	orchestrator.Register(diag, render.PriorityDiagnostics)

	pres.Start(width, height)
	pc := clock.NewPausableClock(nil)
	muted := false

	events := make(chan tcell.Event, 64)
	// Input polling uses a raw goroutine as it interacts directly with the terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash("event poller", r)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	frameTicker := time.NewTicker(settings.FrameInterval())
	defer frameTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				width, height = ev.Size()
				orchestrator.Resize(width, height)
				pres.Resize(width, height)
			case *tcell.EventKey:
				switch keyAction(ev) {
				case actionQuit:
					return nil
				case actionPause:
					paused := pc.Toggle()
					pres.SetPaused(paused)
					if tone != nil {
						tone.SetPaused(paused)
					}
				case actionDiagnostics:
					diag.Toggle()
				case actionMute:
					if tone != nil {
						muted = !muted
						level := settings.Volume
						if muted {
							level = 0
						}
						tone.SetVolume(level)
					}
				}
			}

		case <-frameTicker.C:
			pres.Tick(pc.Delta())
			orchestrator.RenderFrame(render.Context{
				Elapsed:  pres.Elapsed(),
				IsPaused: pres.Paused(),
			})
		}
	}
}
