package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) (*History, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	h, err := OpenHistory(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h, path
}

func TestOpenHistoryCreatesDirectory(t *testing.T) {
	_, path := openTestHistory(t)

	_, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()
	h, _ := openTestHistory(t)

	seed := int64(20)
	first := &Run{
		CorpusPath:   "corpus.txt",
		WindowLength: 3,
		Seed:         &seed,
		InitialText:  "abc",
		TargetLength: 3,
		OutputLength: 6,
		Windows:      3,
		Observations: 6,
	}
	second := &Run{
		CorpusPath:   "other.txt",
		WindowLength: 5,
		InitialText:  "hello",
		TargetLength: 100,
		OutputLength: 42,
		Windows:      80,
		Observations: 90,
	}
	before := time.Now()
	require.NoError(t, h.RecordRun(ctx, first))
	require.NoError(t, h.RecordRun(ctx, second))

	assert.Len(t, first.ID, 36, "a UUID should be assigned")
	assert.NotEqual(t, first.ID, second.ID)
	assert.WithinDuration(t, before, first.CreatedAt, time.Minute)

	runs, err := h.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Nil(t, runs[0].Seed)
	assert.Equal(t, "other.txt", runs[0].CorpusPath)
	assert.Equal(t, 42, runs[0].OutputLength)

	assert.Equal(t, first.ID, runs[1].ID)
	require.NotNil(t, runs[1].Seed)
	assert.Equal(t, int64(20), *runs[1].Seed)
	assert.Equal(t, "abc", runs[1].InitialText)
	assert.Equal(t, 3, runs[1].Windows)
	assert.Equal(t, 6, runs[1].Observations)
	assert.True(t, first.CreatedAt.Equal(runs[1].CreatedAt), "timestamps should round-trip")

	limited, err := h.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestRecordRunDuplicateID(t *testing.T) {
	ctx := context.Background()
	h, _ := openTestHistory(t)

	require.NoError(t, h.RecordRun(ctx, &Run{ID: "fixed", WindowLength: 1}))
	err := h.RecordRun(ctx, &Run{ID: "fixed", WindowLength: 1})
	assert.Error(t, err)
}

func TestRecentRunsEmpty(t *testing.T) {
	h, _ := openTestHistory(t)

	runs, err := h.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
