package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetPutNormalizesKeys(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("Alice.ETH", &Record{Address: "0x1"})

	got := c.Get("alice.eth")
	require.NotNil(t, got)
	assert.Equal(t, "0x1", got.Address)
	assert.Equal(t, "alice.eth", got.Identity)

	got = c.Get("  ALICE.eth ")
	require.NotNil(t, got)
}

func TestCacheMissOnAbsent(t *testing.T) {
	c := NewCache(time.Hour)
	assert.Nil(t, c.Get("nobody.eth"))
}

func TestCacheLazyEvictionOnExpiry(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()
	c.clock = func() time.Time { return now }
	c.Put("alice.eth", &Record{Address: "0x1"})
	require.NotNil(t, c.Get("alice.eth"))
	assert.Equal(t, 1, c.Len())

	// one tick past the TTL the entry reads as a miss and is deleted
	c.clock = func() time.Time { return now.Add(time.Hour + time.Second) }
	assert.Nil(t, c.Get("alice.eth"))
	assert.Equal(t, 0, c.Len())
}

func TestCachePutOverwritesResolvedAt(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()
	c.clock = func() time.Time { return now }
	c.Put("alice.eth", &Record{Address: "0x1"})
	first := c.Get("alice.eth").ResolvedAt

	c.clock = func() time.Time { return now.Add(30 * time.Minute) }
	c.Put("alice.eth", &Record{Address: "0x2"})
	got := c.Get("alice.eth")
	assert.Equal(t, "0x2", got.Address)
	assert.True(t, got.ResolvedAt.After(first))
}

func TestCacheInvalidateAndClear(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("alice.eth", &Record{Address: "0x1"})
	c.Put("bob.eth", &Record{Address: "0x2"})

	c.Invalidate("ALICE.eth")
	assert.Nil(t, c.Get("alice.eth"))
	assert.NotNil(t, c.Get("bob.eth"))

	c.Clear()
	assert.Nil(t, c.Get("bob.eth"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheInFlightTracking(t *testing.T) {
	c := NewCache(time.Hour)
	assert.False(t, c.IsInFlight("alice.eth"))
	c.SetInFlight("Alice.ETH", true)
	assert.True(t, c.IsInFlight("alice.eth"))
	c.SetInFlight("alice.eth", false)
	assert.False(t, c.IsInFlight("alice.eth"))
}
