package discord

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// adaptiveLimiter paces REST side-effect calls: the rate climbs on success
// and halves on failure, staying within [min, max].
type adaptiveLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	minLimit rate.Limit
	maxLimit rate.Limit
	stepUp   rate.Limit
	stepDown float64
}

func newAdaptiveLimiter(initial, min, max rate.Limit) *adaptiveLimiter {
	if initial < min {
		initial = min
	}
	return &adaptiveLimiter{
		limiter:  rate.NewLimiter(initial, int(initial)),
		minLimit: min,
		maxLimit: max,
		stepUp:   1,
		stepDown: 0.5,
	}
}

func (l *adaptiveLimiter) wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func (l *adaptiveLimiter) success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if next := l.limiter.Limit() + l.stepUp; next <= l.maxLimit {
		l.limiter.SetLimit(next)
	}
}

func (l *adaptiveLimiter) failure() {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := rate.Limit(float64(l.limiter.Limit()) * l.stepDown)
	if next < l.minLimit {
		next = l.minLimit
	}
	l.limiter.SetLimit(next)
}

const retryAttempts = 3

// withRetry runs fn up to retryAttempts times with jittered backoff, pacing
// each attempt through the limiter.
func withRetry(ctx context.Context, lim *adaptiveLimiter, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if werr := lim.wait(ctx); werr != nil {
			return werr
		}
		if err = fn(); err == nil {
			lim.success()
			return nil
		}
		lim.failure()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
	return err
}

func backoff(attempt int) time.Duration {
	base := 200 * time.Millisecond << attempt
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
