package stream

import "sync"

// eventKind discriminates buffered emitter events.
type eventKind uint8

const (
	kindValue eventKind = iota
	kindError
	kindComplete
)

// event is a single buffered delivery.
type event[T any] struct {
	kind eventKind
	v    T
	err  error
}

// Emitter is an imperative push subject with a single subscriber slot.
//
// Next, Fail and Complete deliver to the subscriber in call order. Events
// pushed before Subscribe are buffered and flushed synchronously inside
// Subscribe, so scripted streams can exercise the "handler fires before
// Subscribe returns" path on purpose.
//
// After a terminal event (Fail or Complete) further pushes are dropped.
// Emitter is safe for concurrent use.
type Emitter[T any] struct {
	mu         sync.Mutex
	h          Handlers[T]
	subscribed bool
	canceled   bool
	terminated bool
	pending    []event[T]
}

// NewEmitter constructs an Emitter with no subscriber attached.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe attaches the single subscriber, flushes any buffered events
// synchronously, and returns the cancel function.
//
// A second Subscribe call replaces a canceled subscriber but panics on an
// active one: multiplexing a subject across subscribers is not supported.
func (e *Emitter[T]) Subscribe(h Handlers[T]) CancelFunc {
	e.mu.Lock()
	if e.subscribed && !e.canceled {
		e.mu.Unlock()
		panic("stream: Emitter supports a single active subscription")
	}
	e.h = h
	e.subscribed = true
	e.canceled = false
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	// Flush outside the lock: handlers may push further events.
	for _, ev := range pending {
		e.dispatch(ev)
	}

	return func() {
		e.mu.Lock()
		e.canceled = true
		e.mu.Unlock()
	}
}

// Next pushes a value.
func (e *Emitter[T]) Next(v T) {
	e.push(event[T]{kind: kindValue, v: v})
}

// Fail terminates the stream with err.
func (e *Emitter[T]) Fail(err error) {
	e.push(event[T]{kind: kindError, err: err})
}

// Complete terminates the stream normally.
func (e *Emitter[T]) Complete() {
	e.push(event[T]{kind: kindComplete})
}

func (e *Emitter[T]) push(ev event[T]) {
	e.mu.Lock()
	if e.terminated {
		e.mu.Unlock()
		return
	}
	if ev.kind != kindValue {
		e.terminated = true
	}
	if !e.subscribed {
		e.pending = append(e.pending, ev)
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.dispatch(ev)
}

// dispatch delivers one event to the subscriber unless it canceled.
func (e *Emitter[T]) dispatch(ev event[T]) {
	e.mu.Lock()
	if e.canceled {
		e.mu.Unlock()
		return
	}
	h := e.h
	e.mu.Unlock()

	switch ev.kind {
	case kindValue:
		h.value(ev.v)
	case kindError:
		h.fail(ev.err)
	case kindComplete:
		h.complete()
	}
}
