package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "store.yml"))

	_, ok, err := f.Load("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".watchlist", "store.yml")
	f := NewFile(path)

	require.NoError(t, f.Save("watchlist-a", `{"id":"a"}`))
	require.NoError(t, f.Save("watchlist-b", `{"id":"b"}`))

	value, ok, err := f.Load("watchlist-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"a"}`, value)

	// Parent directory is created on demand
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileStorePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yml")
	f := NewFile(path)

	require.NoError(t, f.Save("watchlist-a", "aaa"))
	require.NoError(t, f.Save("watchlist-b", "bbb"))
	require.NoError(t, f.Save("watchlist-a", "updated"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var blobs map[string]string
	require.NoError(t, yaml.Unmarshal(data, &blobs))
	assert.Equal(t, map[string]string{
		"watchlist-a": "updated",
		"watchlist-b": "bbb",
	}, blobs)
}

func TestFileStoreSeparateHandlesShareTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yml")

	require.NoError(t, NewFile(path).Save("k", "v"))

	value, ok, err := NewFile(path).Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestFileStoreCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0644))

	_, _, err := NewFile(path).Load("k")
	assert.Error(t, err)
}
