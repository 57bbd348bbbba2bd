/*
File    : remespath/parser/cache_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/remespath/json"
	"github.com/stretchr/testify/assert"
)

// TestQueryCache_EvictsLeastRecentlyUsed tests the replacement policy
func TestQueryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewQueryCache(2)
	cache.Add("a", json.NewInt(1))
	cache.Add("b", json.NewInt(2))
	cache.Add("c", json.NewInt(3))
	assert.Equal(t, 2, cache.Len())

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

// TestQueryCache_HitRefreshesRecency tests that a hit moves the key to
// the most-recent end
func TestQueryCache_HitRefreshesRecency(t *testing.T) {
	cache := NewQueryCache(2)
	cache.Add("a", json.NewInt(1))
	cache.Add("b", json.NewInt(2))

	// touch "a" so that "b" is now the eviction candidate
	_, ok := cache.Get("a")
	assert.True(t, ok)
	cache.Add("c", json.NewInt(3))

	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

// TestQueryCache_ReAddIsNoOp tests that re-adding keeps the stored value
// and only refreshes recency
func TestQueryCache_ReAddIsNoOp(t *testing.T) {
	cache := NewQueryCache(2)
	cache.Add("a", json.NewInt(1))
	cache.Add("b", json.NewInt(2))
	cache.Add("a", json.NewInt(99))
	assert.Equal(t, 2, cache.Len())

	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.True(t, json.Equals(json.NewInt(1), v))

	// the refresh means "b" evicts first
	cache.Add("c", json.NewInt(3))
	_, ok = cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
}

// TestEngine_CompileUsesCache tests that the engine hands back the
// cached compilation object on a hit
func TestEngine_CompileUsesCache(t *testing.T) {
	engine := NewEngine(4)
	first, err := engine.Compile(`1 + 2`)
	assert.Nil(t, err)
	second, err := engine.Compile(`1 + 2`)
	assert.Nil(t, err)
	assert.Same(t, first, second)
}
