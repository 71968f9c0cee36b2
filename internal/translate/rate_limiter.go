package translate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const DefaultRateLimit = 5

// RateLimiter bounds outgoing translation calls per second.
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(qps), qps),
	}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	limiter := r.limiter
	r.mu.RUnlock()
	return limiter.Wait(ctx)
}

func (r *RateLimiter) SetLimit(qps int) {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	r.mu.Lock()
	r.limiter.SetLimit(rate.Limit(qps))
	r.limiter.SetBurst(qps)
	r.mu.Unlock()
}

func (r *RateLimiter) Limit() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int(r.limiter.Limit())
}

type limitedProvider struct {
	Provider
	limiter *RateLimiter
}

// WithRateLimit makes every TranslateText call wait on limiter first.
func WithRateLimit(p Provider, limiter *RateLimiter) Provider {
	return &limitedProvider{Provider: p, limiter: limiter}
}

func (l *limitedProvider) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.Provider.TranslateText(ctx, text, targetLang)
}
