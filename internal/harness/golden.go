package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/streamcheck/internal/canon"
)

// Snapshot captures a scenario run for golden comparison.
// Serialized with the canonical printer so field order is deterministic.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Pass         bool         `json:"pass"`
	Verdict      string       `json:"verdict"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonicalMap reduces the snapshot to plain maps so the canonical
// marshaler controls key order and empty-field omission.
func (s *Snapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"type": event.Type,
			"seq":  event.Seq,
		}
		if event.Value != nil {
			eventMap["value"] = event.Value
		}
		if event.Error != "" {
			eventMap["error"] = event.Error
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"pass":          s.Pass,
		"verdict":       s.Verdict,
		"trace":         traceList,
	}
}

// RunWithGolden executes a scenario and compares the run snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails; a snapshot/golden divergence
// fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result against the golden file
// for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Pass:         result.Pass,
		Verdict:      result.Verdict,
		Trace:        result.Trace,
	}

	data, err := canon.Marshal(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
