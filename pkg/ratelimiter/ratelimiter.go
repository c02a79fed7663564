// Package ratelimiter throttles outbound API calls.
package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	TakeToken() bool
	Wait(ctx context.Context) error
}

// TokenBucket refills ratePerSecond tokens every second up to burst.
type TokenBucket struct {
	limiter *rate.Limiter
}

func NewTokenBucket(ratePerSecond float64, burst int) *TokenBucket {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// TakeToken consumes a token if one is available right now.
func (tb *TokenBucket) TakeToken() bool {
	return tb.limiter.Allow()
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.limiter.Wait(ctx)
}
