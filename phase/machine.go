package phase

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

var (
	// ErrNoAllowedStates is returned when the allowed set is empty
	ErrNoAllowedStates = errors.New("phase machine requires a non-empty allowed set")
	// ErrInvalidInitial is returned when the initial phase is not allowed
	ErrInvalidInitial = errors.New("initial phase not in allowed set")
)

// Listener is notified after every accepted transition
type Listener func(prev, next Phase)

// Subscription identifies one registered listener
type Subscription struct {
	id uint64
	m  *Machine
}

// Cancel removes the listener; safe to call more than once
func (s Subscription) Cancel() {
	if s.m != nil {
		s.m.Unsubscribe(s)
	}
}

type subscriber struct {
	id uint64
	fn Listener
}

// Machine holds the single current phase and notifies listeners on change
// Single-threaded: transitions and notifications run on the caller's goroutine
type Machine struct {
	current   Phase
	allowed   []Phase
	listeners []subscriber
	nextID    uint64
	logger    *slog.Logger
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger used for rejected transitions
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a machine in the initial phase
// Fails when allowed is empty or does not contain initial
func New(initial Phase, allowed []Phase, opts ...Option) (*Machine, error) {
	if len(allowed) == 0 {
		return nil, ErrNoAllowedStates
	}
	if !slices.Contains(allowed, initial) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInitial, initial)
	}
	m := &Machine{
		current: initial,
		allowed: slices.Clone(allowed),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Current returns the active phase
func (m *Machine) Current() Phase {
	return m.current
}

// SetState transitions to next and notifies listeners in subscription order
// Returns false when next equals the current phase or is not allowed
func (m *Machine) SetState(next Phase) bool {
	if next == m.current {
		return false
	}
	if !slices.Contains(m.allowed, next) {
		m.logger.Warn("rejected phase transition", "from", m.current, "to", next)
		return false
	}

	prev := m.current
	m.current = next
	m.logger.Debug("phase transition", "from", prev, "to", next)

	// Snapshot so listeners may (un)subscribe during notification
	listeners := slices.Clone(m.listeners)
	for _, l := range listeners {
		l.fn(prev, next)
	}
	return true
}

// Subscribe registers fn for transition notifications
func (m *Machine) Subscribe(fn Listener) Subscription {
	m.nextID++
	m.listeners = append(m.listeners, subscriber{id: m.nextID, fn: fn})
	return Subscription{id: m.nextID, m: m}
}

// Unsubscribe removes the listener registered under sub; unknown subscriptions are ignored
func (m *Machine) Unsubscribe(sub Subscription) {
	m.listeners = slices.DeleteFunc(m.listeners, func(s subscriber) bool {
		return s.id == sub.id
	})
}

// ListenerCount returns the number of registered listeners
func (m *Machine) ListenerCount() int {
	return len(m.listeners)
}
