package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, _, _ := bucket.take()
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, remaining, resetTime := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 20.0) // one token every 50ms
	bucket.take()
	bucket.take()

	allowed, _, _ := bucket.take()
	require.False(t, allowed)

	time.Sleep(80 * time.Millisecond)
	allowed, _, _ = bucket.take()
	assert.True(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := BatchEndpointConfigs(5, time.Minute)

	tests := []struct {
		path    string
		method  string
		pattern string
	}{
		{"/matching/run", "POST", "/matching/run"},
		{"/job-postings/123/match", "POST", "/job-postings/*/match"},
		{"/candidates/abc/match/", "POST", "/candidates/*/match"},
		{"/job-postings/123/matches", "GET", ""},
		{"/job-postings/123/match", "GET", ""},
		{"/job-postings//match", "POST", ""},
		{"/match", "POST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.pattern == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.pattern, got.Pattern)
		})
	}

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/match", "POST")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/match", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Default limit is shared across non-batch routes but not across clients
	allowed, _ = limiter.Allow("127.0.0.1", "/weight-profiles/sales", "GET")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.2", "/match", "POST")
	assert.True(t, allowed)
}

func TestLimiter_BatchTier(t *testing.T) {
	limiter := NewLimiter(NewConfig(config.RateLimitConfig{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		BatchLimit:    5,
		BatchWindow:   time.Minute,
	}))
	defer limiter.Stop()

	// burst is limit/5 = 1
	allowed, info := limiter.Allow("client", "/matching/run", "POST")
	require.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, _ = limiter.Allow("client", "/matching/run", "POST")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("client", "/match", "POST")
	assert.True(t, allowed, "default tier has its own bucket")

	// Different job ids share the same batch bucket
	allowed, _ = limiter.Allow("client", "/job-postings/a/match", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client", "/job-postings/b/match", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(NewConfig(config.RateLimitConfig{Enabled: false}))
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("client", "/matching/run", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("client", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("client", "/match", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/match", "POST")
	}
	require.Len(t, limiter.buckets, 3)

	limiter.evictIdle(time.Now().Add(time.Second))
	assert.Empty(t, limiter.buckets)
	assert.Empty(t, limiter.lastAccess)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}
