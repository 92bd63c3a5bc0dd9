package whisper

// runState is the mutable per-run bookkeeping; cleared by Reset
type runState struct {
	fired          map[string]bool
	finalTriggered bool
	debugPending   bool
	lastSlot       int
	spawned        int
}

func newRunState(debug bool) runState {
	return runState{
		fired:        make(map[string]bool),
		debugPending: debug,
		lastSlot:     -1,
	}
}
