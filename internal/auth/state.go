package auth

import "context"

// State models session validity as observed at application start.
type State string

const (
	StateUnknown  State = "unknown"
	StateChecking State = "checking"
	StateValid    State = "valid"
	StateInvalid  State = "invalid"
)

// Resume runs the startup state machine:
//
//	Unknown -> Checking          when the store reports a token present
//	Checking -> Valid            verify succeeds; cached profile is trusted
//	Checking -> Invalid          verify fails; the store is cleared
//	Unknown -> Invalid           no token; equivalent to never having logged in
//
// Invalid is terminal for this process: a new login is required.
func (s *Service) Resume(ctx context.Context) State {
	s.transition(StateUnknown)
	if !s.store.HasSession() {
		s.transition(StateInvalid)
		return StateInvalid
	}

	s.transition(StateChecking)
	if !s.Verify(ctx) {
		// A 401 already cleared the store inside the client; clearing again
		// is idempotent and also covers network-level verify failures.
		s.store.Clear()
		s.transition(StateInvalid)
		return StateInvalid
	}

	s.transition(StateValid)
	return StateValid
}

func (s *Service) transition(st State) {
	if s.observer != nil {
		s.observer(st)
	}
}
