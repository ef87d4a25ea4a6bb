// Package stream defines the push-based stream abstraction that the matcher
// verifies against, plus a small set of sources for scripting streams in
// scenarios and tests.
//
// # Model
//
// A Stream delivers zero or more values to a subscriber, then terminates at
// most once: either with completion (normal end) or with an error. A stream
// that never terminates is legal; bounding the wait is the caller's concern.
//
// Subscribe accepts a Handlers value with three callback slots and returns a
// cancel function. Handlers may be invoked synchronously, before Subscribe
// returns — sources in this package deliberately do so, because downstream
// consumers must tolerate it.
//
// # Sources
//
//   - Of: emits fixed values, then completes.
//   - Faulty: emits fixed values, then errors.
//   - Never: emits nothing and never terminates.
//   - Emitter: an imperative push subject for scripted delivery.
//   - Go: runs a producer function against an Emitter on its own goroutine.
package stream
