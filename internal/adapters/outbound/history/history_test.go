package history_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mulegate/mulegate/internal/adapters/outbound/history"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHistory_LoadEmpty(t *testing.T) {
	h := history.New(t.TempDir())

	entries, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileHistory_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New(dir)

	first := domain.HistoryEntry{
		RunID:           "run-1",
		Timestamp:       time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Score:           55.5,
		TotalViolations: 15,
		Method:          domain.MethodPrimary,
	}
	second := domain.HistoryEntry{
		RunID:           "run-2",
		Timestamp:       time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		Score:           61.2,
		TotalViolations: 11,
		Method:          domain.MethodPrimary,
	}

	require.NoError(t, h.Append(first))
	require.NoError(t, h.Append(second))

	entries, err := h.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "run-2", entries[1].RunID)
	assert.InDelta(t, 61.2, entries[1].Score, 0.001)
}

func TestFileHistory_FileLandsUnderMulegateDir(t *testing.T) {
	dir := t.TempDir()
	h := history.New(dir)

	require.NoError(t, h.Append(domain.HistoryEntry{RunID: "run-1"}))

	_, err := os.Stat(filepath.Join(dir, ".mulegate", "history", "runs.json"))
	assert.NoError(t, err)
}

func TestFileHistory_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".mulegate", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))

	h := history.New(dir)
	_, err := h.Load()
	assert.Error(t, err)
}
