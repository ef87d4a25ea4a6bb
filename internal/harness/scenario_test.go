package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenarios", "count-up.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "count-up", sc.Name)
	require.Len(t, sc.Steps, 4)
	assert.True(t, sc.Steps[3].Complete)
	assert.Equal(t, []any{1, 2, 3}, sc.Expect.Values)
	assert.True(t, sc.Expect.ExpectCompletion())
	assert.False(t, sc.Expect.ExpectError())
	assert.Nil(t, sc.Failure)
}

func TestLoadScenario_FailureClause(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenarios", "mismatch.yaml"))
	require.NoError(t, err)

	require.NotNil(t, sc.Failure)
	assert.Equal(t, "VALUE_MISMATCH", sc.Failure.Code)
	assert.Equal(t, "index 1", sc.Failure.Contains)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "no-such-file.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownFieldRejected(t *testing.T) {
	// "step:" is a typo for "steps:".
	_, err := ParseScenario([]byte(`
name: typo
description: "x"
step:
  - complete: true
expect:
  values: []
`))
	require.Error(t, err)
}

func TestParseScenario_NameRequired(t *testing.T) {
	_, err := ParseScenario([]byte(`
description: "x"
steps:
  - complete: true
expect:
  values: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParseScenario_StepNeedsExactlyOneKind(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: bad-step
description: "x"
steps:
  - emit: 1
    complete: true
expect:
  values: [1]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
}

func TestParseScenario_StepAfterTerminalRejected(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: dead-step
description: "x"
steps:
  - complete: true
  - emit: 1
expect:
  values: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestParseScenario_UnknownFailureCode(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: bad-code
description: "x"
steps:
  - complete: true
expect:
  values: []
failure:
  code: NOT_A_CODE
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown code")
}

func TestStep_EmitValue_DistinguishesZero(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: zero
description: "emit: 0 is a real value, not an absent key"
steps:
  - emit: 0
  - complete: true
expect:
  values: [0]
`))
	require.NoError(t, err)

	require.NotNil(t, sc.Steps[0].Emit)
	v, err := sc.Steps[0].EmitValue()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
