package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval keeps outbound model calls under a 30 requests/minute quota.
const DefaultInterval = 2500 * time.Millisecond

// Clock is the time source used by the limiter, swapped out in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// Limiter spaces successive Wait calls at least one interval apart.
// A single Limiter is shared by every model call site in the process.
type Limiter struct {
	interval time.Duration
	clock    Clock
	bucket   *rate.Limiter
}

// creates a limiter; a non-positive interval disables throttling
func New(interval time.Duration, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		interval: interval,
		clock:    clock,
		bucket:   rate.NewLimiter(limit, 1),
	}
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the caller's slot opens. Slots are handed out in call
// order, so concurrent callers queue up one interval apart. If ctx ends first
// the slot is released and ctx.Err() is returned.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := l.clock.Now()
	reservation := l.bucket.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	select {
	case <-l.clock.After(delay):
		return nil
	case <-ctx.Done():
		reservation.CancelAt(l.clock.Now())
		return ctx.Err()
	}
}
