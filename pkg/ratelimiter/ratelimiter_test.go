package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketBurst(t *testing.T) {
	tb := NewTokenBucket(1, 2)
	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken())
}

func TestTokenBucketWaitHonoursContext(t *testing.T) {
	tb := NewTokenBucket(0.001, 1)
	require.True(t, tb.TakeToken())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, tb.Wait(ctx))
}

func TestTokenBucketDefaults(t *testing.T) {
	tb := NewTokenBucket(0, 0)
	assert.NoError(t, tb.Wait(context.Background()))
}
