package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidFile(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"pass.yaml": passingScenario})

	out, err := execute(t, "validate", filepath.Join(dir, "pass.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: bad
description: "missing one-of on step"
steps:
  - emit: 1
    complete: true
expect:
  values: [1]
`), 0o644))

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "steps[0]")
}

func TestValidateCommand_MixedFiles(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"good.yaml": passingScenario,
		"bad.yaml":  "nonsense: true\n",
	})

	out, err := execute(t, "validate",
		filepath.Join(dir, "good.yaml"), filepath.Join(dir, "bad.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "✓ "+filepath.Join(dir, "good.yaml"))
	assert.Contains(t, out, "✗ "+filepath.Join(dir, "bad.yaml"))
}
