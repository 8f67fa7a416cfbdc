package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("item:1", payload{Name: "milk", Count: 2}))

	var got payload
	require.NoError(t, store.Get("item:1", &got))
	assert.Equal(t, payload{Name: "milk", Count: 2}, got)
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	store := newTestStore(t)

	var got payload
	err := store.Get("missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("item:1", payload{Name: "milk"}))
	require.NoError(t, store.Delete("item:1"))

	var got payload
	assert.ErrorIs(t, store.Get("item:1", &got), ErrNotFound)
}

func TestListByPrefix(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("pantry:1", payload{}))
	require.NoError(t, store.Set("pantry:2", payload{}))
	require.NoError(t, store.Set("recipe:1", payload{}))

	keys, err := store.List("pantry:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pantry:1", "pantry:2"}, keys)
}
