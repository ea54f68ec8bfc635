package resolution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testCacheTTL = 5 * time.Minute

func TestExpansionCache_HitWithinTTL(t *testing.T) {
	cache := NewExpansionCache(testCacheTTL)
	exp := newExpansion()
	exp.add("EL", 2)

	cache.put("camper", 7, "T1", exp)

	got, ok := cache.get("camper", 7, "T1")
	assert.True(t, ok)
	assert.Equal(t, 2, got.caps["EL"])
}

func TestExpansionCache_VersionIsolation(t *testing.T) {
	cache := NewExpansionCache(testCacheTTL)
	exp := newExpansion()
	exp.add("EL", 2)

	cache.put("camper", 7, "T1", exp)

	_, ok := cache.get("camper", 8, "T1")
	assert.False(t, ok, "a bumped catalog version must never read stale expansions")

	_, ok = cache.get("turismo", 7, "T1")
	assert.False(t, ok, "categories must not share entries")
}

func TestExpansionCache_TTLExpiry(t *testing.T) {
	cache := NewExpansionCache(time.Minute)
	current := time.Unix(1000, 0)
	cache.now = func() time.Time { return current }

	exp := newExpansion()
	exp.add("EL", 1)
	cache.put("camper", 1, "T1", exp)

	_, ok := cache.get("camper", 1, "T1")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = cache.get("camper", 1, "T1")
	assert.False(t, ok)

	assert.Equal(t, 1, cache.Purge())
	assert.Equal(t, 0, cache.Len())
}

func TestExpansionCache_FirstWriterWins(t *testing.T) {
	cache := NewExpansionCache(testCacheTTL)

	first := newExpansion()
	first.add("EL", 1)
	second := newExpansion()
	second.add("EL", 9)

	cache.put("camper", 1, "T1", first)
	cache.put("camper", 1, "T1", second)

	got, ok := cache.get("camper", 1, "T1")
	assert.True(t, ok)
	assert.Equal(t, 1, got.caps["EL"], "a live entry is never overwritten")
}

func TestRequestKey_Canonical(t *testing.T) {
	a := RequestKey(map[string]int{"B": 2, "A": 1})
	b := RequestKey(map[string]int{"A": 1, "B": 2})

	assert.Equal(t, a, b)
	assert.Equal(t, "A=1|B=2", a)
}

func TestRequestKey_QuantitySensitive(t *testing.T) {
	assert.NotEqual(t,
		RequestKey(map[string]int{"A": 1}),
		RequestKey(map[string]int{"A": 2}),
	)
}
