package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamcheck/internal/history"
)

const passingScenario = `
name: pass
description: "exact sequence then completion"
steps:
  - emit: 1
  - emit: 2
  - complete: true
expect:
  values: [1, 2]
`

const failingScenario = `
name: fail
description: "stream completes one value early"
steps:
  - emit: 1
  - complete: true
expect:
  values: [1, 2]
`

// writeScenarios lays out a scenario directory for CLI tests.
func writeScenarios(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTestCommand_AllPass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})

	out, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pass")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_FailureSetsExitCode(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ fail")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommand_MissingDirIsCommandError(t *testing.T) {
	_, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	out, err := execute(t, "test", dir, "--filter", "pass")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_JSONOutput(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})

	out, err := execute(t, "test", dir, "--format", "json")
	require.NoError(t, err)

	var result TestResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Passed)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "pass", result.Scenarios[0].Name)
	assert.Equal(t, "pass", result.Scenarios[0].Verdict)
}

func TestTestCommand_UnloadableScenarioFails(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: [not a string\n"})

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_EmptyDir(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_RecordsHistory(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "test", dir, "--record", dbPath)
	require.Error(t, err) // one scenario fails

	st, err := history.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byName := map[string]bool{}
	for _, run := range runs {
		byName[run.Scenario] = run.Pass
	}
	assert.True(t, byName["pass"])
	assert.False(t, byName["fail"])
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})

	_, err := execute(t, "test", dir, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
