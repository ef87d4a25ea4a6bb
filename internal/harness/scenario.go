package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one stream-matching scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Used for golden file names.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps script the stream under test, delivered in order.
	Steps []Step `yaml:"steps"`

	// Expect declares the expectation the matcher runs with.
	Expect Expectation `yaml:"expect"`

	// Failure, when present, inverts the scenario: the match must FAIL with
	// the given code (and message substring). When absent the match must pass.
	Failure *FailureClause `yaml:"failure,omitempty"`
}

// Step is a single scripted stream event. Exactly one field may be set.
type Step struct {
	// Emit is a value event. Kept as a yaml.Node so "emit: 0" and an absent
	// emit key can be told apart.
	Emit *yaml.Node `yaml:"emit,omitempty"`

	// Error terminates the stream with an error carrying this message.
	Error string `yaml:"error,omitempty"`

	// Complete terminates the stream normally.
	Complete bool `yaml:"complete,omitempty"`
}

// EmitValue decodes the emitted value. Valid only when Emit is set.
func (s *Step) EmitValue() (any, error) {
	var v any
	if err := s.Emit.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode emit value: %w", err)
	}
	return v, nil
}

// Expectation mirrors the matcher configuration.
type Expectation struct {
	// Values is the expected sequence. May be empty.
	Values []any `yaml:"values"`

	// Completion sets whether normal completion is an acceptable terminal
	// event. Defaults to true when omitted.
	Completion *bool `yaml:"completion,omitempty"`

	// Error sets whether a stream error is an acceptable terminal event.
	// Defaults to false when omitted.
	Error *bool `yaml:"error,omitempty"`
}

// ExpectCompletion resolves the completion flag with its default.
func (e Expectation) ExpectCompletion() bool {
	if e.Completion == nil {
		return true
	}
	return *e.Completion
}

// ExpectError resolves the error flag with its default.
func (e Expectation) ExpectError() bool {
	if e.Error == nil {
		return false
	}
	return *e.Error
}

// FailureClause asserts that the match fails in a specific way.
type FailureClause struct {
	// Code is the expected FailureCode name (e.g. "VALUE_MISMATCH").
	Code string `yaml:"code"`

	// Contains, when set, must be a substring of the failure message.
	Contains string `yaml:"contains,omitempty"`
}

// knownFailureCodes guards against typos in scenario files.
var knownFailureCodes = map[string]bool{
	"TOO_MANY_VALUES":       true,
	"VALUE_MISMATCH":        true,
	"UNEXPECTED_ERROR":      true,
	"UNEXPECTED_COMPLETION": true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	terminated := false
	for i, step := range s.Steps {
		set := 0
		if step.Emit != nil {
			set++
		}
		if step.Error != "" {
			set++
		}
		if step.Complete {
			set++
		}
		if set != 1 {
			return fmt.Errorf("steps[%d]: exactly one of emit, error, complete is required", i)
		}
		if terminated {
			return fmt.Errorf("steps[%d]: step after terminal event is unreachable", i)
		}
		if step.Error != "" || step.Complete {
			terminated = true
		}
	}

	if s.Failure != nil {
		if s.Failure.Code == "" {
			return fmt.Errorf("failure: code is required")
		}
		if !knownFailureCodes[s.Failure.Code] {
			return fmt.Errorf("failure: unknown code %q", s.Failure.Code)
		}
	}

	return nil
}
