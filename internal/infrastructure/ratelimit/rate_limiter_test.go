package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("user-1", "create_order")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("user-1", "create_order")
	assert.False(t, allowed)

	// A different user and a different action each get their own bucket.
	allowed, _ = limiter.Allow("user-2", "create_order")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("user-1", "send_message")
	assert.True(t, allowed)
}
