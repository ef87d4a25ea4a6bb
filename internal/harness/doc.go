// Package harness executes stream-matching scenarios defined in YAML files.
//
// A scenario scripts a stream (the exact events it delivers, in order) and
// declares the expectation the matcher must hold against it. The harness
// builds the scripted stream, runs the matcher, and reports whether the
// verdict was the one the scenario demanded.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - emit: 1
//	  - emit: 2
//	  - complete: true
//	expect:
//	  values: [1, 2]
//	  completion: true
//	  error: false
//	failure:
//	  code: VALUE_MISMATCH
//	  contains: "index 1"
//
// Each step carries exactly one of emit, error or complete. The expect block
// mirrors the matcher options: values is the expected sequence, completion
// and error are the termination flags (defaults: completion true, error
// false). When a failure block is present the scenario passes only if the
// match FAILS with the given code and, when set, a message containing the
// given substring; without a failure block the scenario passes only if the
// match passes.
//
// # Deterministic Traces
//
// Every delivered event is recorded into a trace stamped with logical
// sequence numbers from testutil.StepClock, never wall time, so traces are
// identical across runs and safe to pin with golden files (see RunWithGolden).
package harness
