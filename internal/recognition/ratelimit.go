package recognition

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Recognizer backed by a metered remote API
type RateLimited struct {
	next    Recognizer
	limiter *rate.Limiter
}

// NewRateLimited allows perMinute calls per minute with the given burst.
// A non-positive perMinute returns next unwrapped.
func NewRateLimited(next Recognizer, perMinute, burst int) Recognizer {
	if perMinute <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

// Recognize waits for the limiter before delegating
func (r *RateLimited) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return r.next.Recognize(ctx, imageData, contentType)
}

// Close closes the wrapped recognizer
func (r *RateLimited) Close() error {
	return r.next.Close()
}
