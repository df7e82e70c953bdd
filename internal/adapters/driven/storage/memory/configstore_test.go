package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"input.dir": "/data"}
	store := NewConfigStore(seed)

	assert.Equal(t, "/data", store.GetString("input.dir"))

	// Seed map is copied
	seed["input.dir"] = "/changed"
	assert.Equal(t, "/data", store.GetString("input.dir"))
}

func TestNewConfigStore_Nil(t *testing.T) {
	store := NewConfigStore(nil)
	require.NotNil(t, store)

	val, ok := store.Get("anything")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("output.dir", "original"))
	require.NoError(t, store.Set("output.dir", "updated"))

	val, ok := store.Get("output.dir")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str": "value",
		"int": 123,
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 42, 42},
		{"int64", int64(123), 123},
		{"float64", float64(123.7), 123},
		{"numeric string", "17", 17},
		{"non-numeric string", "not_a_number", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"key": tt.value})
			assert.Equal(t, tt.want, store.GetInt("key"))
		})
	}

	assert.Equal(t, 0, NewConfigStore(nil).GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"string true", "true", true},
		{"string garbage", "yes please", false},
		{"int", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"output.compress": tt.value})
			assert.Equal(t, tt.want, store.GetBool("output.compress"))
		})
	}

	assert.False(t, NewConfigStore(nil).GetBool("missing"))
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore(nil)
	_ = store.Set("key1", "value1")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value1", store.GetString("key1"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore(nil).Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			_ = store.Set(key, id)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key-%d", i)))
	}
}
