package expect

import (
	"reflect"

	"github.com/roach88/streamcheck/internal/canon"
)

// Comparator decides whether an actual value satisfies an expected value.
// Comparators must be pure: no side effects, same answer for same inputs.
type Comparator[T any] func(actual, want T) bool

// Printer renders a value for failure diagnostics.
type Printer[T any] func(v T) string

// Option configures a match.
type Option[T any] func(*config[T])

type config[T any] struct {
	expectComplete bool
	expectError    bool
	compare        Comparator[T]
	print          Printer[T]
}

func defaultConfig[T any]() config[T] {
	return config[T]{
		expectComplete: true,
		expectError:    false,
		compare: func(actual, want T) bool {
			return reflect.DeepEqual(actual, want)
		},
		print: func(v T) string {
			return canon.Sprint(v)
		},
	}
}

// ExpectCompletion sets whether normal completion is an acceptable terminal
// event after the full sequence has matched. Default: true.
func ExpectCompletion[T any](on bool) Option[T] {
	return func(c *config[T]) {
		c.expectComplete = on
	}
}

// ExpectError sets whether a stream error is an acceptable terminal event
// after the full sequence has matched. Default: false.
func ExpectError[T any](on bool) Option[T] {
	return func(c *config[T]) {
		c.expectError = on
	}
}

// WithComparator replaces the default comparator (reflect.DeepEqual).
// A nil comparator is ignored.
func WithComparator[T any](cmp Comparator[T]) Option[T] {
	return func(c *config[T]) {
		if cmp != nil {
			c.compare = cmp
		}
	}
}

// WithPrinter replaces the default printer (canonical JSON). Useful for
// values without a structural serialization. A nil printer is ignored.
func WithPrinter[T any](p Printer[T]) Option[T] {
	return func(c *config[T]) {
		if p != nil {
			c.print = p
		}
	}
}
