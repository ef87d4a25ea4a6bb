package expect

import (
	"errors"
	"fmt"
)

// FailureCode categorizes match failures.
type FailureCode string

const (
	// CodeTooManyValues indicates the stream emitted a value after the
	// expected sequence was already fully matched.
	CodeTooManyValues FailureCode = "TOO_MANY_VALUES"

	// CodeValueMismatch indicates a value did not satisfy the comparator
	// against the expected value at its index.
	CodeValueMismatch FailureCode = "VALUE_MISMATCH"

	// CodeUnexpectedError indicates the stream errored before the sequence
	// was fully matched, or an error was not an acceptable terminal event.
	CodeUnexpectedError FailureCode = "UNEXPECTED_ERROR"

	// CodeUnexpectedCompletion indicates the stream completed before the
	// sequence was fully matched, or completion was not an acceptable
	// terminal event.
	CodeUnexpectedCompletion FailureCode = "UNEXPECTED_COMPLETION"
)

// MatchError is the verdict for a failed match.
//
// Exactly one MatchError is ever produced per match: the first detected
// fault wins and later events are suppressed.
type MatchError struct {
	// Code identifies the failure category.
	Code FailureCode

	// Index is the cursor position when the fault was detected: the index
	// of the offending value for mismatches, or the count of values matched
	// so far for termination faults.
	Index int

	// Message is the human-readable diagnostic.
	Message string
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the FailureCode from err.
// Returns false if err is not a MatchError. Handles wrapped errors.
func CodeOf(err error) (FailureCode, bool) {
	var me *MatchError
	if errors.As(err, &me) {
		return me.Code, true
	}
	return "", false
}

// IsValueMismatch reports whether err is a VALUE_MISMATCH failure.
func IsValueMismatch(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeValueMismatch
}

// IsTooManyValues reports whether err is a TOO_MANY_VALUES failure.
func IsTooManyValues(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeTooManyValues
}

// IsUnexpectedError reports whether err is an UNEXPECTED_ERROR failure.
func IsUnexpectedError(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeUnexpectedError
}

// IsUnexpectedCompletion reports whether err is an UNEXPECTED_COMPLETION failure.
func IsUnexpectedCompletion(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeUnexpectedCompletion
}
