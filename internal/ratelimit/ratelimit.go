// Package ratelimit paces browser-backed operations. Every operation
// launches a fresh browser against the same site, so successive launches
// are spaced out with a jittered delay to keep the traffic pattern dull.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type Limiter struct {
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	mu         sync.Mutex
}

func New(minDelay, maxDelay time.Duration) *Limiter {
	return &Limiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks until enough time has passed since the previous operation,
// or until ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastAction)
	delay := l.delay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	l.lastAction = time.Now()
	return nil
}

func (l *Limiter) delay() time.Duration {
	if l.maxDelay <= l.minDelay {
		return l.minDelay
	}

	jitter := time.Duration(rand.Int63n(int64(l.maxDelay - l.minDelay)))
	return l.minDelay + jitter
}
