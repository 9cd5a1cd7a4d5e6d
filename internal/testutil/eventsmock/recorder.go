package eventsmock

import (
	"context"
	"sync"

	"credentia/internal/events"
)

// Recorder keeps every published event for assertions. Set FailWith to make
// Publish fail (publishing must never undo a committed transition).
type Recorder struct {
	mu       sync.Mutex
	FailWith error
	Events   []events.Event
}

var _ events.Publisher = (*Recorder)(nil)

func (r *Recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = nil
	r.FailWith = nil
}
