package httputil

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests to one upstream source. It combines a
// sliding 60-second window bounded by requests-per-minute with a minimum
// spacing between consecutive requests. Each source gets its own instance;
// state is never shared across sources.
type RateLimiter struct {
	mu         sync.Mutex
	timestamps []time.Time
	window     time.Duration
	perMinute  int
	spacer     *rate.Limiter

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a limiter allowing requestsPerMinute requests in
// any sliding 60-second window, with at least minDelay between requests.
func NewRateLimiter(requestsPerMinute int, minDelay time.Duration) *RateLimiter {
	spacing := rate.Inf
	if minDelay > 0 {
		spacing = rate.Every(minDelay)
	}
	return &RateLimiter{
		timestamps: make([]time.Time, 0, requestsPerMinute),
		window:     time.Minute,
		perMinute:  requestsPerMinute,
		spacer:     rate.NewLimiter(spacing, 1),
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

// Acquire blocks until a request slot is available or ctx is done.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	for {
		rl.mu.Lock()
		now := rl.now()
		rl.prune(now)

		if len(rl.timestamps) < rl.perMinute {
			rl.timestamps = append(rl.timestamps, now)
			rl.mu.Unlock()
			// Enforce minimum spacing after the window admits us.
			return rl.spacer.Wait(ctx)
		}

		// Window is full: wait until the oldest timestamp slides out.
		wait := rl.window - now.Sub(rl.timestamps[0])
		rl.mu.Unlock()

		if wait <= 0 {
			continue
		}
		if err := rl.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Pending reports how many requests are currently counted in the window.
func (rl *RateLimiter) Pending() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.prune(rl.now())
	return len(rl.timestamps)
}

func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-rl.window)
	i := 0
	for i < len(rl.timestamps) && !rl.timestamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		rl.timestamps = rl.timestamps[i:]
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
