package element

import (
	"sync"

	"github.com/go-drift/elements/pkg/loop"
)

// SignalState is the state of a one-shot Signal.
type SignalState int

const (
	// SignalUnarmed means no future exists yet.
	SignalUnarmed SignalState = iota
	// SignalPending means the future exists and has not resolved.
	SignalPending
	// SignalResolved means the signal has fired.
	SignalResolved
)

func (s SignalState) String() string {
	switch s {
	case SignalPending:
		return "pending"
	case SignalResolved:
		return "resolved"
	default:
		return "unarmed"
	}
}

// Signal is a one-shot lifecycle signal. Firing it resolves its future
// exactly once; later Fire calls are no-ops.
type Signal struct {
	mu     sync.Mutex
	state  SignalState
	future *loop.Future
}

// Arm creates the signal's future on l. Arming an armed signal is a no-op.
func (s *Signal) Arm(l *loop.Loop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SignalUnarmed {
		return
	}
	s.future = loop.NewFuture(l)
	s.state = SignalPending
}

// Fire resolves the signal. It returns true only for the call that
// resolved it. Firing an unarmed signal is a no-op that returns false.
func (s *Signal) Fire() bool {
	s.mu.Lock()
	if s.state != SignalPending {
		s.mu.Unlock()
		return false
	}
	s.state = SignalResolved
	f := s.future
	s.mu.Unlock()
	return f.Resolve(nil)
}

// State returns the current state.
func (s *Signal) State() SignalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Future returns the signal's future, or nil while unarmed.
func (s *Signal) Future() *loop.Future {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.future
}

// Gate is the attach/detach signal pair that bounds an element's active
// window.
type Gate struct {
	Attached Signal
	Detached Signal
}

// Arm arms both signals on l.
func (g *Gate) Arm(l *loop.Loop) {
	g.Attached.Arm(l)
	g.Detached.Arm(l)
}
