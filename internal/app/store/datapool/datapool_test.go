package datapool_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnorman/wayfarer/internal/app/store/datapool"
	"go.uber.org/zap"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "datapool.json")
}

func TestLoad_MissingFileSeedsEmptyDocument(t *testing.T) {
	path := tempPath(t)

	store, err := datapool.Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, store.Get())

	// The seed must be on disk as well.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(raw))
}

func TestLoad_UnreadableFileFails(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := datapool.Load(path, zap.NewNop())
	require.Error(t, err)
}

func TestReplaceGet_RoundTrip(t *testing.T) {
	store, err := datapool.Load(tempPath(t), zap.NewNop())
	require.NoError(t, err)

	doc := map[string]any{
		"version": float64(3),
		"steps":   []any{"one", "two"},
		"nested":  map[string]any{"deep": true},
	}
	store.Replace(doc)

	assert.Equal(t, doc, store.Get())
}

func TestGet_ReturnsACopy(t *testing.T) {
	store, err := datapool.Load(tempPath(t), zap.NewNop())
	require.NoError(t, err)

	store.Replace(map[string]any{"nested": map[string]any{"k": "v"}})

	got := store.Get()
	got["nested"].(map[string]any)["k"] = "mutated"

	assert.Equal(t, "v", store.Get()["nested"].(map[string]any)["k"],
		"mutating a Get result must not affect the store")
}

func TestReplace_PersistsAcrossRestart(t *testing.T) {
	path := tempPath(t)

	store, err := datapool.Load(path, zap.NewNop())
	require.NoError(t, err)

	doc := map[string]any{"announcement": "closed for maintenance"}
	store.Replace(doc)
	store.Sync()

	// Simulated restart: a fresh store over the same file.
	reloaded, err := datapool.Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, doc, reloaded.Get())
}

func TestReplace_WritesPrettyPrintedJSON(t *testing.T) {
	path := tempPath(t)

	store, err := datapool.Load(path, zap.NewNop())
	require.NoError(t, err)

	store.Replace(map[string]any{"a": float64(1), "b": float64(2)})
	store.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ", "file should be indented")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, doc)
}

func TestReplace_LastWriteWins(t *testing.T) {
	store, err := datapool.Load(tempPath(t), zap.NewNop())
	require.NoError(t, err)

	store.Replace(map[string]any{"n": float64(1)})
	store.Replace(map[string]any{"n": float64(2)})

	assert.Equal(t, float64(2), store.Get()["n"])
}

func TestReplace_ConcurrentFlushesConvergeToLatest(t *testing.T) {
	path := tempPath(t)

	store, err := datapool.Load(path, zap.NewNop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Replace(map[string]any{"n": float64(n)})
		}(i)
	}
	wg.Wait()
	store.Sync()

	// Whichever replace won in memory must also be the one on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, store.Get(), onDisk)
}
