package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKVStore_SetGet tests basic round trips
func TestKVStore_SetGet(t *testing.T) {
	store := NewKVStore()

	require.NoError(t, store.Set(map[string]string{"a": "1", "b": "2"}))

	values, err := store.Get("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "1", values["a"])
	assert.Equal(t, "2", values["b"])
}

// TestKVStore_Get_MissingKey tests that missing keys are absent, not errors
func TestKVStore_Get_MissingKey(t *testing.T) {
	store := NewKVStore()

	values, err := store.Get("nope")
	require.NoError(t, err)
	assert.NotContains(t, values, "nope")
}

// TestKVStore_Set_Overwrite tests last-write-wins per key
func TestKVStore_Set_Overwrite(t *testing.T) {
	store := NewKVStore()

	require.NoError(t, store.Set(map[string]string{"k": "old"}))
	require.NoError(t, store.Set(map[string]string{"k": "new"}))

	values, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", values["k"])
}

// TestKVStore_Remove tests deletion and its idempotence
func TestKVStore_Remove(t *testing.T) {
	store := NewKVStore()

	require.NoError(t, store.Set(map[string]string{"k": "v"}))
	require.NoError(t, store.Remove("k"))
	require.NoError(t, store.Remove("k"))

	values, err := store.Get("k")
	require.NoError(t, err)
	assert.Empty(t, values)
}
