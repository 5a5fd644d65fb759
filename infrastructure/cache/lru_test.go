package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU(3)
	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")
	c.Add("d", "4")

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	v, ok := c.Get("d")
	assert.True(t, ok)
	assert.Equal(t, "4", v)
	assert.Equal(t, 3, c.Len())
}

func TestLRUGetRefreshesRecency(t *testing.T) {
	c := NewLRU(2)
	c.Add("a", "1")
	c.Add("b", "2")

	// Touch a so b becomes the eviction candidate.
	_, _ = c.Get("a")
	c.Add("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestLRUAddExistingUpdatesValue(t *testing.T) {
	c := NewLRU(2)
	c.Add("a", "1")
	c.Add("a", "updated")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", v)
	assert.Equal(t, 1, c.Len())
}

func TestLRURemoveAndPurge(t *testing.T) {
	c := NewLRU(4)
	c.Add("a", "1")
	c.Add("b", "2")

	c.Remove("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestLRUZeroCapacityClampsToOne(t *testing.T) {
	c := NewLRU(0)
	c.Add("a", "1")
	c.Add("b", "2")
	assert.Equal(t, 1, c.Len())
}

func TestLRUBoundedUnderChurn(t *testing.T) {
	c := NewLRU(16)
	for i := 0; i < 1000; i++ {
		c.Add(fmt.Sprintf("key-%d", i), "v")
	}
	assert.Equal(t, 16, c.Len())
}
