package toolcache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey_InvariantUnderParameterOrder(t *testing.T) {
	k1 := Key("market", map[string]string{"query": "test", "param": "value"})
	k2 := Key("market", map[string]string{"param": "value", "query": "test"})

	assert.Equal(t, k1, k2)
}

func TestKey_DifferentOperationsDiffer(t *testing.T) {
	k1 := Key("company_insights", map[string]string{"query": "test"})
	k2 := Key("role_trends", map[string]string{"query": "test"})

	assert.NotEqual(t, k1, k2)
}

func TestKey_DifferentParamsDiffer(t *testing.T) {
	k1 := Key("market", map[string]string{"query": "stripe"})
	k2 := Key("market", map[string]string{"query": "meta"})

	assert.NotEqual(t, k1, k2)
}

func TestCache_RoundTrip(t *testing.T) {
	c := New[string](0)

	c.Set("k", "v", time.Hour)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCache_MissingKeyAbsent(t *testing.T) {
	c := New[string](0)

	_, ok := c.Get("never-set")
	assert.False(t, ok)
}

func TestCache_ZeroTTLExpiresImmediately(t *testing.T) {
	c := New[string](0)

	c.Set("k", "v", 0)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryRemovedOnRead(t *testing.T) {
	c := New[string](0)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("k", "v", time.Minute)
	assert.Equal(t, 1, c.Len())

	c.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_OverwriteReplacesValueAndExpiry(t *testing.T) {
	c := New[string](0)

	c.Set("k", "old", 0)
	c.Set("k", "new", time.Hour)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestCache_Clear(t *testing.T) {
	c := New[string](0)

	c.Set("a", "1", time.Hour)
	c.Set("b", "2", time.Hour)
	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_BoundedByMaxEntries(t *testing.T) {
	c := New[int](2)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, time.Hour)

	assert.Equal(t, 2, c.Len())
	// "a" is the least recently used entry and has been evicted
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrFill_CachesResult(t *testing.T) {
	c := New[string](0)
	calls := 0
	fill := func() (string, error) {
		calls++
		return "result", nil
	}

	got, err := c.GetOrFill("market", map[string]string{"query": "stripe"}, time.Hour, fill)
	assert.NoError(t, err)
	assert.Equal(t, "result", got)

	got, err = c.GetOrFill("market", map[string]string{"query": "stripe"}, time.Hour, fill)
	assert.NoError(t, err)
	assert.Equal(t, "result", got)
	assert.Equal(t, 1, calls)
}

func TestGetOrFill_ErrorNotCached(t *testing.T) {
	c := New[string](0)
	calls := 0
	fill := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("search failed")
		}
		return "recovered", nil
	}

	_, err := c.GetOrFill("market", map[string]string{"query": "x"}, time.Hour, fill)
	assert.Error(t, err)

	got, err := c.GetOrFill("market", map[string]string{"query": "x"}, time.Hour, fill)
	assert.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, calls)
}
