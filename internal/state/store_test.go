package state

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil))), dir
}

func TestStore_Path(t *testing.T) {
	store, dir := newTestStore(t)
	assert.Equal(t, filepath.Join(dir, "mackerel-plugin-bird", "last"), store.Path())
}

func TestStore_LoadMissingCreatesDirectory(t *testing.T) {
	store, dir := newTestStore(t)

	counters, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, counters)
	assert.NotNil(t, counters)

	info, err := os.Stat(filepath.Join(dir, "mackerel-plugin-bird"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	want := Counters{
		"a":                 {Value: 10, At: 100},
		"bird.ipv4.x.y.zzz": {Value: 3, At: 100},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save(Counters{"a": {Value: 1, At: 1}, "b": {Value: 2, At: 1}}))
	require.NoError(t, store.Save(Counters{"a": {Value: 5, At: 2}}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Counters{"a": {Value: 5, At: 2}}, got)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestStore_LoadCorruptIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	counters, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, counters)

	_, err = store.read()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_LoadNullDocument(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("null"), 0o644))

	counters, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, counters)
}
