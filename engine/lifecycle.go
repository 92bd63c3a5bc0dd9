package engine

import (
	"log/slog"

	"github.com/lixenwraith/motus/target"
)

// Lifecycle tears the presentation down in dependency order: coordinators
// first so no timer fires into a disposed layer, then layers
type Lifecycle struct {
	coordinators []target.Disposer
	layers       []target.Disposer
	logger       *slog.Logger
	disposed     bool
}

// NewLifecycle creates an empty manager
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// AddCoordinator registers a coordinator-level owner of timers
func (l *Lifecycle) AddCoordinator(d target.Disposer) {
	l.coordinators = append(l.coordinators, d)
}

// AddLayer registers a render or audio collaborator
func (l *Lifecycle) AddLayer(d target.Disposer) {
	l.layers = append(l.layers, d)
}

// Len is the number of registered disposers
func (l *Lifecycle) Len() int {
	return len(l.coordinators) + len(l.layers)
}

// DisposeAll releases everything once; later calls are no-ops
// pending reports timers still armed afterwards, nil skips the check
func (l *Lifecycle) DisposeAll(pending func() int) {
	if l.disposed {
		return
	}
	l.disposed = true

	coordinators, layers := l.coordinators, l.layers
	l.coordinators, l.layers = nil, nil

	for _, d := range coordinators {
		d.Dispose()
	}
	for _, d := range layers {
		d.Dispose()
	}

	if rem := l.Len(); rem > 0 {
		l.logger.Warn("lifecycle registered during dispose", "remaining", rem)
	}
	if pending != nil {
		if n := pending(); n > 0 {
			l.logger.Warn("timers pending after dispose", "count", n)
		}
	}
	l.logger.Debug("lifecycle disposed", "coordinators", len(coordinators), "layers", len(layers))
}
