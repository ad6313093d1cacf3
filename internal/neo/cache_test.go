package neo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)}
	c := NewCache(5 * time.Minute)
	c.now = clock.Now

	_, ok := c.Get("feed")
	assert.False(t, ok, "empty cache")

	c.Set("feed", 1)
	clock.Advance(4*time.Minute + 59*time.Second)
	v, ok := c.Get("feed")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	clock.Advance(time.Second)
	_, ok = c.Get("feed")
	assert.False(t, ok, "entry expires at exactly the ttl")
	assert.Equal(t, 1, c.Len(), "stale entries are not evicted")

	c.Set("feed", 2)
	v, ok = c.Get("feed")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestNewCacheDefaultsTTL(t *testing.T) {
	assert.Equal(t, DefaultCacheTTL, NewCache(0).ttl)
}
