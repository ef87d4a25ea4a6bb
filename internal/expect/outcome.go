package expect

import (
	"context"
	"errors"
	"sync"
)

// ErrPending is returned by Outcome.Err before the outcome has settled.
var ErrPending = errors.New("expect: outcome not settled yet")

// Outcome is the deferred result of a match.
//
// An Outcome settles exactly once: nil for a pass, a *MatchError for a
// failure. Settlement is enforced internally; callers cannot settle it.
type Outcome struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newOutcome() *Outcome {
	return &Outcome{done: make(chan struct{})}
}

// settle records the verdict. Only the first call has any effect.
func (o *Outcome) settle(err error) {
	o.once.Do(func() {
		o.err = err
		close(o.done)
	})
}

// Done returns a channel that closes when the outcome settles.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// Err returns the verdict: nil for a pass, a *MatchError for a failure.
// Before settlement it returns ErrPending.
func (o *Outcome) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return ErrPending
	}
}

// Wait blocks until the outcome settles or ctx is done, whichever comes
// first, and returns the verdict or the context error.
func (o *Outcome) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
