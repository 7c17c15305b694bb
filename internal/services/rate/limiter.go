package rate

import (
	"context"
	"fmt"
	"math"
	"time"
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter is a fixed-window counter. Allow consumes one slot and reports
// how long the caller should wait when the window is full.
type Limiter struct {
	store     WindowStore
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewLimiter(store WindowStore, keyPrefix string, limit int, window time.Duration) *Limiter {
	if limit < 0 {
		limit = 0
	}
	if window <= 0 {
		window = time.Minute
	}

	return &Limiter{
		store:     store,
		limit:     limit,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, fmt.Errorf("rate limit key is empty")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}
	if l.limit == 0 {
		return 0, true, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, l.keyPrefix+":"+key, l.window)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.limit) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	return int64(math.Ceil(d.Seconds()))
}
