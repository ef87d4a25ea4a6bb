// Package expect verifies that a push-based stream emits an expected,
// ordered sequence of values and terminates the way the caller demands.
//
// # Model
//
// Match subscribes once to the stream under test and advances a cursor
// through the expected sequence as values arrive. The verdict is exposed as
// an Outcome, a deferred result that settles exactly once: nil for a pass,
// a *MatchError describing the first detected fault for a failure.
//
// Matching is insensitive to the real-time spacing of emissions; only order
// matters. Events may be delivered synchronously, before Subscribe returns,
// or on later goroutines — both are handled. Once the verdict is settled all
// further events are ignored, and the subscription is released on a separate
// goroutine so release never races with subscription setup.
//
// # Termination expectations
//
// Two independent flags control what terminal event is acceptable after the
// full sequence has matched:
//
//   - ExpectCompletion(true), ExpectError(false) — the default: the stream
//     must complete normally.
//   - ExpectError(true) with completion off — the stream must fail.
//   - both true — either terminal event passes.
//   - both false — the match succeeds as soon as the last expected value
//     arrives, without waiting for any terminal event.
//
// # Bounded waits
//
// No timeout is built in. A stream that never emits, errors, or completes
// leaves the Outcome unsettled forever; use Outcome.Wait with a context
// deadline to bound the wait.
package expect
