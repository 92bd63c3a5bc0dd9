package status

// Metric keys published by the engine
const (
	KeyRunID           = "run"
	KeyPhase           = "phase"
	KeyElapsedMS       = "elapsed_ms"
	KeyPhaseElapsedMS  = "phase_ms"
	KeyTint            = "tint"
	KeyTintLatched     = "latched"
	KeyPendingTimers   = "timers"
	KeyMicroOverrides  = "micro"
	KeyWhispersActive  = "whispers"
	KeyWhispersSpawned = "spawned"
	KeyFinalTriggered  = "final"
	KeyTerminal        = "terminal"
	KeyPaused          = "paused"
)

// DiagnosticKeys is the order of the on-screen diagnostics line
var DiagnosticKeys = []string{
	KeyPhase,
	KeyElapsedMS,
	KeyPhaseElapsedMS,
	KeyTint,
	KeyTintLatched,
	KeyPendingTimers,
	KeyMicroOverrides,
	KeyWhispersActive,
	KeyWhispersSpawned,
	KeyFinalTriggered,
	KeyTerminal,
	KeyPaused,
}
