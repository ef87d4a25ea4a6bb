package expect

import (
	"fmt"
	"sync"

	"github.com/roach88/streamcheck/internal/stream"
)

// finalized is the cursor sentinel meaning the verdict has been produced.
// Every handler checks for it first, before any other effect.
const finalized = -1

// matcher drives the cursor through the expected sequence.
//
// Cursor regions:
//
//	0 <= cursor < len(want)  next expected value is want[cursor]
//	cursor == len(want)      sequence consumed; awaiting termination
//	cursor == finalized      verdict settled; all further events ignored
type matcher[T any] struct {
	mu     sync.Mutex
	cfg    config[T]
	want   []T
	cursor int

	outcome *Outcome

	// subscribed closes once cancel holds the subscription handle, so the
	// release goroutine never runs before the handle exists.
	subscribed chan struct{}
	cancel     stream.CancelFunc
	release    sync.Once
}

// Match subscribes once to s and asserts that it emits want in order,
// terminating per the configured expectations (by default: normal completion
// after the last value). The returned Outcome settles exactly once.
//
// Handlers invoked synchronously inside Subscribe are fully supported: the
// cursor sentinel suppresses events after the verdict, and the subscription
// is released on a separate goroutine that waits for Subscribe to return.
func Match[T any](s stream.Stream[T], want []T, opts ...Option[T]) *Outcome {
	cfg := defaultConfig[T]()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := &matcher[T]{
		cfg:        cfg,
		want:       want,
		outcome:    newOutcome(),
		subscribed: make(chan struct{}),
	}

	cancel := s.Subscribe(stream.Handlers[T]{
		OnValue:    m.onValue,
		OnError:    m.onError,
		OnComplete: m.onComplete,
	})

	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()
	close(m.subscribed)

	// With no termination expected and nothing (left) to match, there is
	// nothing to wait for. An empty sequence resolves here; a non-empty one
	// already resolved inside onValue when its last value arrived.
	m.mu.Lock()
	if m.cursor == len(m.want) && !cfg.expectComplete && !cfg.expectError {
		m.finalizeLocked(nil)
	}
	m.mu.Unlock()

	return m.outcome
}

// onValue handles one emitted value.
func (m *matcher[T]) onValue(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == finalized {
		return
	}

	if m.cursor >= len(m.want) {
		m.finalizeLocked(&MatchError{
			Code:  CodeTooManyValues,
			Index: m.cursor,
			Message: fmt.Sprintf("received value %s after all %d expected values were matched",
				m.cfg.print(v), len(m.want)),
		})
		return
	}

	if !m.cfg.compare(v, m.want[m.cursor]) {
		m.finalizeLocked(&MatchError{
			Code:  CodeValueMismatch,
			Index: m.cursor,
			Message: fmt.Sprintf("value mismatch at index %d: got %s, want %s",
				m.cursor, m.cfg.print(v), m.cfg.print(m.want[m.cursor])),
		})
		return
	}

	m.cursor++
	if m.cursor == len(m.want) && !m.cfg.expectComplete && !m.cfg.expectError {
		// No terminal event demanded: matching the full sequence suffices.
		m.finalizeLocked(nil)
	}
}

// onError handles stream failure.
func (m *matcher[T]) onError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == finalized {
		return
	}

	if m.cfg.expectError && m.cursor == len(m.want) {
		m.finalizeLocked(nil)
		return
	}

	m.finalizeLocked(&MatchError{
		Code:  CodeUnexpectedError,
		Index: m.cursor,
		Message: fmt.Sprintf("stream errored unexpectedly before emission index %d: %v",
			m.cursor, err),
	})
}

// onComplete handles normal stream completion.
func (m *matcher[T]) onComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == finalized {
		return
	}

	if m.cursor == len(m.want) {
		if m.cfg.expectError && !m.cfg.expectComplete {
			// The one configuration in which completion is a fault: an
			// error was demanded and never arrived.
			m.finalizeLocked(&MatchError{
				Code:  CodeUnexpectedCompletion,
				Index: m.cursor,
				Message: fmt.Sprintf("stream completed normally after %d values but an error was expected",
					m.cursor),
			})
			return
		}
		m.finalizeLocked(nil)
		return
	}

	if m.cursor < len(m.want) {
		m.finalizeLocked(&MatchError{
			Code:  CodeUnexpectedCompletion,
			Index: m.cursor,
			Message: fmt.Sprintf("stream completed unexpectedly after %d of %d expected values",
				m.cursor, len(m.want)),
		})
		return
	}

	// Unreachable: onValue fails before the cursor can pass len(want).
	m.finalizeLocked(&MatchError{
		Code:  CodeUnexpectedCompletion,
		Index: m.cursor,
		Message: fmt.Sprintf("stream completed after %d emissions, more than the %d expected",
			m.cursor, len(m.want)),
	})
}

// finalizeLocked settles the verdict. Callers must hold m.mu and must have
// checked the sentinel; the sentinel is set before any other effect so any
// re-entrant event observes the finalized state.
func (m *matcher[T]) finalizeLocked(err error) {
	m.cursor = finalized
	m.outcome.settle(err)
	go m.releaseSubscription()
}

// releaseSubscription cancels the subscription exactly once, after Subscribe
// has returned the handle. Running on its own goroutine keeps release safe
// even when the verdict was reached synchronously during subscription setup.
func (m *matcher[T]) releaseSubscription() {
	<-m.subscribed
	m.release.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
	})
}
