package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*LRUCache, *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache(capacity, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUCache(t *testing.T) {
	testCases := []struct {
		name    string
		actions func(t *testing.T, c *LRUCache, clk *clock)
	}{
		{
			name: "hit within ttl",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("hehe-plus-7days-1gb", []byte("1"))
				clk.advance(59 * time.Second)
				v, ok := c.Get("hehe-plus-7days-1gb")
				assert.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name: "miss after ttl",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("a", []byte("1"))
				clk.advance(time.Minute + time.Second)
				_, ok := c.Get("a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Len())
			},
		},
		{
			name: "evicts least recently used",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("a", []byte("1"))
				c.Set("b", []byte("2"))
				c.Get("a")
				c.Set("c", []byte("3"))

				_, ok := c.Get("b")
				assert.False(t, ok)
				_, ok = c.Get("a")
				assert.True(t, ok)
				_, ok = c.Get("c")
				assert.True(t, ok)
			},
		},
		{
			name: "overwrite resets ttl",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("a", []byte("1"))
				clk.advance(40 * time.Second)
				c.Set("a", []byte("2"))
				clk.advance(40 * time.Second)
				v, ok := c.Get("a")
				assert.True(t, ok)
				assert.Equal(t, "2", string(v))
			},
		},
		{
			name: "delete",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("a", []byte("1"))
				c.Delete("a")
				c.Delete("missing")
				_, ok := c.Get("a")
				assert.False(t, ok)
			},
		},
		{
			name: "janitor sweep removes only expired",
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set("old", []byte("1"))
				clk.advance(30 * time.Second)
				c.Set("fresh", []byte("2"))
				clk.advance(45 * time.Second)

				assert.Equal(t, 1, c.evictExpired())
				assert.Equal(t, 1, c.Len())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, clk := newTestCache(2, time.Minute)
			tc.actions(t, c, clk)
		})
	}
}

func TestLRUCache_NoTTL(t *testing.T) {
	c, clk := newTestCache(1, 0)
	c.Set("a", []byte("1"))
	clk.advance(24 * time.Hour)
	_, ok := c.Get("a")
	assert.True(t, ok)
}
