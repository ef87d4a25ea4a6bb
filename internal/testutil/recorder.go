package testutil

import (
	"sync"

	"github.com/roach88/streamcheck/internal/stream"
)

// RecordedEvent is one delivery captured by a Recorder.
type RecordedEvent[T any] struct {
	// Kind is "value", "error" or "complete".
	Kind string

	// Value is set for value events.
	Value T

	// Err is set for error events.
	Err error
}

// Recorder captures every event a stream delivers, in order.
//
// Recorder is safe under concurrent delivery.
type Recorder[T any] struct {
	mu     sync.Mutex
	events []RecordedEvent[T]
}

// NewRecorder constructs an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Handlers returns a handler set that records into r.
func (r *Recorder[T]) Handlers() stream.Handlers[T] {
	return stream.Handlers[T]{
		OnValue: func(v T) {
			r.append(RecordedEvent[T]{Kind: "value", Value: v})
		},
		OnError: func(err error) {
			r.append(RecordedEvent[T]{Kind: "error", Err: err})
		},
		OnComplete: func() {
			r.append(RecordedEvent[T]{Kind: "complete"})
		},
	}
}

// Tap returns a stream that forwards s to its subscriber while recording
// every event into r on the way through.
func (r *Recorder[T]) Tap(s stream.Stream[T]) stream.Stream[T] {
	return stream.Func[T](func(h stream.Handlers[T]) stream.CancelFunc {
		return s.Subscribe(stream.Handlers[T]{
			OnValue: func(v T) {
				r.append(RecordedEvent[T]{Kind: "value", Value: v})
				if h.OnValue != nil {
					h.OnValue(v)
				}
			},
			OnError: func(err error) {
				r.append(RecordedEvent[T]{Kind: "error", Err: err})
				if h.OnError != nil {
					h.OnError(err)
				}
			},
			OnComplete: func() {
				r.append(RecordedEvent[T]{Kind: "complete"})
				if h.OnComplete != nil {
					h.OnComplete()
				}
			},
		})
	})
}

func (r *Recorder[T]) append(e RecordedEvent[T]) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a snapshot copy of recorded events.
func (r *Recorder[T]) Events() []RecordedEvent[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]RecordedEvent[T], len(r.events))
	copy(cp, r.events)
	return cp
}

// Values returns just the recorded values, in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, e := range r.events {
		if e.Kind == "value" {
			out = append(out, e.Value)
		}
	}
	return out
}

// Reset clears the recorder.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
