package app

import (
	"context"
	"sync"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/pkg/log"
)

// State represents the lifecycle state of the application.
type State int

const (
	StateStopped State = iota
	StateLoading
	StateReady
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle is the startup state machine:
//
//	Stopped -> Loading -> Ready -> Stopping -> Stopped
//	               \-> Crashed
//
// It runs once per process; there is no way back to Loading because the
// registry can only be loaded once.
type Lifecycle struct {
	mu           sync.RWMutex
	state        State
	started      bool
	settled      chan struct{}
	settleOnce   sync.Once
	logger       log.Logger
	eventEmitter EventEmitter
}

// NewLifecycle creates a new lifecycle manager.
func NewLifecycle(logger log.Logger, emitter EventEmitter) *Lifecycle {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Lifecycle{
		state:        StateStopped,
		settled:      make(chan struct{}),
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	if err := l.validate(oldState, newState); err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	if newState == StateLoading {
		l.started = true
	}
	l.mu.Unlock()

	if oldState == StateLoading {
		l.settleOnce.Do(func() { close(l.settled) })
	}

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}

// validate must be called with mu held.
func (l *Lifecycle) validate(from, to State) error {
	switch from {
	case StateStopped:
		if to != StateLoading || l.started {
			return domain.ErrNotRunning
		}
	case StateLoading:
		if to != StateReady && to != StateCrashed && to != StateStopping {
			return domain.ErrAlreadyRunning
		}
	case StateReady:
		if to != StateStopping {
			return domain.ErrAlreadyRunning
		}
	case StateStopping:
		if to != StateStopped {
			return domain.ErrAlreadyRunning
		}
	case StateCrashed:
		return domain.ErrNotRunning
	}
	return nil
}

// Ready reports whether the registry has loaded and queries may be served.
func (l *Lifecycle) Ready() bool {
	return l.State() == StateReady
}

// WaitSettled blocks until the lifecycle leaves Loading or ctx is done.
// It returns the state reached.
func (l *Lifecycle) WaitSettled(ctx context.Context) (State, error) {
	select {
	case <-l.settled:
		return l.State(), nil
	case <-ctx.Done():
		return l.State(), ctx.Err()
	}
}
