// Package testutil provides deterministic helpers shared by tests and the
// scenario harness.
package testutil

import "sync"

// StepClock is a thread-safe monotonic logical clock.
//
// Trace events are stamped with StepClock sequence numbers instead of wall
// time so traces are identical across runs and safe for golden comparison.
type StepClock struct {
	mu  sync.Mutex
	seq int64
}

// NewStepClock creates a clock starting at 0. The first Next() returns 1.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Next increments and returns the next sequence number.
func (c *StepClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *StepClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset resets the clock to 0 for test reuse.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
