package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamcheck/internal/history"
)

func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	st, err := history.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Record(context.Background(), history.RunRecord{Scenario: "count-up", Pass: true, Verdict: "pass"})
	require.NoError(t, err)
	_, err = st.Record(context.Background(), history.RunRecord{Scenario: "mismatch", Pass: false, Verdict: "VALUE_MISMATCH: wrong"})
	require.NoError(t, err)
	return dbPath
}

func TestHistoryCommand_ListsRuns(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := execute(t, "history", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "count-up")
	assert.Contains(t, out, "mismatch")
	assert.Contains(t, out, "✗")
}

func TestHistoryCommand_JSON(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := execute(t, "history", dbPath, "--format", "json")
	require.NoError(t, err)

	var entries []HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
}

func TestHistoryCommand_MissingDatabase(t *testing.T) {
	_, err := execute(t, "history", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistoryCommand_Limit(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := execute(t, "history", dbPath, "--format", "json", "--limit", "1")
	require.NoError(t, err)

	var entries []HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 1)
}
