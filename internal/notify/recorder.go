package notify

import "sync"

// Event is a recorded notification for assertions in tests.
type Event struct {
	Kind    string
	Op      string
	Message string
}

// Recorder captures notifications in order. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Pending(op, message string) { r.append("pending", op, message) }
func (r *Recorder) Success(op, message string) { r.append("success", op, message) }
func (r *Recorder) Failure(op, message string) { r.append("failure", op, message) }

func (r *Recorder) append(kind, op, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: kind, Op: op, Message: message})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
