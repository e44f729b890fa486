package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/ai/coach", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiterEnforcesBurst(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/ai/coach", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/ai/coach", "POST")
	assert.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/ai/coach", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 60, info.Limit)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/ai/coach", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.2.3.4", "/ai/coach", "POST")
	require.False(t, allowed)

	// A different client still has a full bucket
	allowed, _ = limiter.Allow("5.6.7.8", "/ai/coach", "POST")
	assert.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 1000; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/ai/coach", "POST")
		require.True(t, allowed)
	}
}

func TestHealthCheckUnlimited(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	match := MatchEndpoint("/ai/process", "POST", configs)
	require.NotNil(t, match)
	assert.Equal(t, 20, match.Limit)

	match = MatchEndpoint("/stories/abc-123", "PUT", configs)
	require.NotNil(t, match)
	assert.Equal(t, 100, match.Limit)

	assert.Nil(t, MatchEndpoint("/unknown", "GET", configs))
}

func TestLimiterConcurrentAccess(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := fmt.Sprintf("client-%d", n%4)
			for j := 0; j < 50; j++ {
				limiter.Allow(client, "/stories", "GET")
			}
		}(i)
	}
	wg.Wait()
}

func TestDefaultEndpointConfigsCoverAIRoutes(t *testing.T) {
	configs := DefaultEndpointConfigs()
	for _, path := range []string{"/ai/process", "/ai/coach", "/ai/structure", "/ai/tag"} {
		assert.NotNil(t, MatchEndpoint(path, "POST", configs), path)
	}
}
