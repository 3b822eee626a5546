package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0 // no background saves in tests
	cfg.BackupCount = 0
	s, err := OpenWithConfig(cfg)
	require.NoError(t, err)
	return s, path
}

func TestPutGet(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	require.NoError(t, s.Put("guilds", "g1", testDoc{Name: "alpha", Count: 2}))

	var got testDoc
	ok, err := s.Get("guilds", "g1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 2, got.Count)

	ok, err = s.Get("guilds", "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	require.NoError(t, s.Put("c", "b", 1))
	require.NoError(t, s.Put("c", "a", 2))
	require.NoError(t, s.Put("other", "z", 3))

	assert.Equal(t, []string{"a", "b"}, s.Keys("c"))
	assert.Empty(t, s.Keys("unknown"))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.Put("guilds", "g1", testDoc{Name: "beta"}))
	require.NoError(t, s.Close())

	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	reopened, err := OpenWithConfig(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	var got testDoc
	ok, err := reopened.Get("guilds", "g1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "beta", got.Name)
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	require.NoError(t, s.Put("c", "k", 1))
	s.Delete("c", "k")

	var got int
	ok, err := s.Get("c", "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
