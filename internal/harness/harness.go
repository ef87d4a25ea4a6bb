package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/streamcheck/internal/expect"
	"github.com/roach88/streamcheck/internal/stream"
	"github.com/roach88/streamcheck/internal/testutil"
)

// TraceEvent is one delivered stream event, stamped with a logical sequence
// number for deterministic golden comparison.
type TraceEvent struct {
	Type  string `json:"type"` // "value", "error" or "complete"
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Seq   int64  `json:"seq"`
}

// Result is the outcome of running one scenario.
type Result struct {
	// Pass indicates the scenario held: the match passed (no failure block)
	// or failed exactly as the failure block demanded.
	Pass bool `json:"pass"`

	// Verdict is the matcher's verdict: "pass" or the failure message.
	Verdict string `json:"verdict"`

	// Code is the FailureCode name when the match failed, empty otherwise.
	Code string `json:"code,omitempty"`

	// Errors contains scenario validation error messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	// Trace contains every delivered event in order.
	Trace []TraceEvent `json:"trace"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario with a discarded logger.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWith executes a scenario:
//
//  1. Script an Emitter from the scenario steps (buffered, so delivery is
//     synchronous inside the matcher's Subscribe).
//  2. Tap the stream to build the trace, stamped by a StepClock.
//  3. Run the matcher with the scenario's expectation.
//  4. Judge the verdict against the failure clause (or its absence).
//
// The returned error covers harness-level faults (undecodable emit values,
// a scenario that leaves the verdict unsettled); expectation faults land in
// Result.Errors.
func RunWith(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	src := stream.NewEmitter[any]()
	for i, step := range scenario.Steps {
		switch {
		case step.Emit != nil:
			v, err := step.EmitValue()
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			src.Next(v)
		case step.Error != "":
			src.Fail(errors.New(step.Error))
		case step.Complete:
			src.Complete()
		}
	}

	clock := testutil.NewStepClock()
	result := &Result{Pass: true, Trace: []TraceEvent{}}
	tapped := stream.Func[any](func(h stream.Handlers[any]) stream.CancelFunc {
		return src.Subscribe(stream.Handlers[any]{
			OnValue: func(v any) {
				result.Trace = append(result.Trace, TraceEvent{Type: "value", Value: v, Seq: clock.Next()})
				if h.OnValue != nil {
					h.OnValue(v)
				}
			},
			OnError: func(err error) {
				result.Trace = append(result.Trace, TraceEvent{Type: "error", Error: err.Error(), Seq: clock.Next()})
				if h.OnError != nil {
					h.OnError(err)
				}
			},
			OnComplete: func() {
				result.Trace = append(result.Trace, TraceEvent{Type: "complete", Seq: clock.Next()})
				if h.OnComplete != nil {
					h.OnComplete()
				}
			},
		})
	})

	out := expect.Match[any](tapped, scenario.Expect.Values,
		expect.ExpectCompletion[any](scenario.Expect.ExpectCompletion()),
		expect.ExpectError[any](scenario.Expect.ExpectError()),
	)

	// Delivery is synchronous: all scripted events were flushed inside
	// Subscribe, so an unsettled outcome here will stay unsettled forever.
	verdict := out.Err()
	if errors.Is(verdict, expect.ErrPending) {
		return nil, fmt.Errorf("scenario %q leaves the verdict unsettled: stream neither completed nor errored and the expectation awaits termination", scenario.Name)
	}

	judge(scenario, verdict, result)

	logger.Info("scenario executed",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"verdict", result.Verdict,
		"events", len(result.Trace),
	)

	return result, nil
}

// judge fills Verdict/Code and evaluates the failure clause.
func judge(scenario *Scenario, verdict error, result *Result) {
	if verdict == nil {
		result.Verdict = "pass"
	} else {
		result.Verdict = verdict.Error()
		if code, ok := expect.CodeOf(verdict); ok {
			result.Code = string(code)
		}
	}

	if scenario.Failure == nil {
		if verdict != nil {
			result.AddError(fmt.Sprintf("match failed: %v", verdict))
		}
		return
	}

	if verdict == nil {
		result.AddError(fmt.Sprintf("expected failure %s but the match passed", scenario.Failure.Code))
		return
	}

	if result.Code != scenario.Failure.Code {
		result.AddError(fmt.Sprintf("expected failure code %s, got %s", scenario.Failure.Code, result.Code))
	}
	if scenario.Failure.Contains != "" && !strings.Contains(verdict.Error(), scenario.Failure.Contains) {
		result.AddError(fmt.Sprintf("failure message %q does not contain %q", verdict.Error(), scenario.Failure.Contains))
	}
}
