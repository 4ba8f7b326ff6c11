package github

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// RateLimiterStats provides statistics about rate limiter usage
type RateLimiterStats struct {
	Limit             int           `json:"limit"`
	RemainingRequests int           `json:"remaining_requests"`
	ResetTime         time.Time     `json:"reset_time"`
	CurrentDelay      time.Duration `json:"current_delay"`
	TotalWaits        int64         `json:"total_waits"`
	TotalDelayTime    time.Duration `json:"total_delay_time"`
}

// RateLimiterConfig configures the rate limiter behavior
type RateLimiterConfig struct {
	// BaseDelay is the minimum delay between requests
	BaseDelay time.Duration

	// MaxDelay is the maximum delay between requests
	MaxDelay time.Duration

	// BackoffFactor is the exponential backoff multiplier
	BackoffFactor float64

	// Jitter adds randomness to delays
	Jitter float64

	// MinRemainingRequests is the threshold below which we start aggressive
	// throttling. It is capped at a tenth of the reported hourly limit so
	// small quotas are not throttled from the first request.
	MinRemainingRequests int

	// AggressiveThrottleDelay is the delay when remaining requests are low
	AggressiveThrottleDelay time.Duration
}

// DefaultRateLimiterConfig returns a default rate limiter configuration
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		BaseDelay:               0,
		MaxDelay:                30 * time.Second,
		BackoffFactor:           2.0,
		Jitter:                  0.1,
		MinRemainingRequests:    100,
		AggressiveThrottleDelay: 2 * time.Second,
	}
}

// RateLimiter paces requests of one client against the limits GitHub reports
// in its response headers. It is safe for concurrent use.
type RateLimiter struct {
	config *RateLimiterConfig
	mu     sync.Mutex

	limit     int
	remaining int
	resetTime time.Time
	lastCall  time.Time

	stats RateLimiterStats
	rand  *rand.Rand
}

// NewRateLimiter creates a limiter that assumes a fresh quota until the first
// response updates it.
func NewRateLimiter(config *RateLimiterConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimiterConfig()
	}
	return &RateLimiter{
		config:    config,
		limit:     5000, // GitHub's default authenticated limit
		remaining: 5000,
		resetTime: time.Now().Add(time.Hour),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until it's safe to make an API call
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	delay := rl.calculateDelay()
	if delay > 0 {
		rl.stats.TotalWaits++
		rl.stats.TotalDelayTime += delay
		rl.mu.Unlock()

		if err := sleep(ctx, delay); err != nil {
			return err
		}

		rl.mu.Lock()
	}

	rl.lastCall = time.Now()
	rl.mu.Unlock()
	return ctx.Err()
}

// UpdateLimits records the quota reported by the last response. A zero reset
// time means the response carried no rate headers and is ignored. A limit of
// zero keeps the previously known limit.
func (rl *RateLimiter) UpdateLimits(limit, remaining int, reset time.Time) {
	if reset.IsZero() {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limit > 0 {
		rl.limit = limit
		rl.stats.Limit = limit
	}
	rl.remaining = remaining
	rl.resetTime = reset
	rl.stats.RemainingRequests = remaining
	rl.stats.ResetTime = reset
}

// Delay returns the current delay before the next API call
func (rl *RateLimiter) Delay() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.calculateDelay()
}

// Stats returns current rate limiter statistics
func (rl *RateLimiter) Stats() RateLimiterStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := rl.stats
	stats.CurrentDelay = rl.calculateDelay()
	return stats
}

func (rl *RateLimiter) calculateDelay() time.Duration {
	now := time.Now()

	// Quota has reset
	if now.After(rl.resetTime) {
		return 0
	}

	// Nothing left, wait until reset whatever the thresholds say
	if rl.remaining <= 0 {
		return time.Until(rl.resetTime)
	}

	var totalDelay time.Duration

	if !rl.lastCall.IsZero() {
		since := now.Sub(rl.lastCall)
		if since < rl.config.BaseDelay {
			totalDelay = rl.config.BaseDelay - since
		}
	}

	if rl.remaining < rl.lowWater() {
		if d := rl.calculateAggressiveDelay(); d > totalDelay {
			totalDelay = d
		}
	}

	if rl.remaining < rl.limit/10 && rl.config.BaseDelay > 0 {
		used := float64(rl.limit-rl.remaining) / float64(rl.limit)
		multiplier := math.Pow(rl.config.BackoffFactor, used*5)
		if d := time.Duration(float64(rl.config.BaseDelay) * multiplier); d > totalDelay {
			totalDelay = d
		}
	}

	if rl.config.Jitter > 0 && totalDelay > 0 {
		totalDelay += time.Duration(rl.rand.Float64() * float64(totalDelay) * rl.config.Jitter)
	}

	if totalDelay > rl.config.MaxDelay {
		totalDelay = rl.config.MaxDelay
	}
	return totalDelay
}

// lowWater returns the remaining count below which requests are paced.
func (rl *RateLimiter) lowWater() int {
	threshold := rl.config.MinRemainingRequests
	if rl.limit > 0 {
		threshold = min(threshold, rl.limit/10)
	}
	return threshold
}

// calculateAggressiveDelay calculates delay when remaining requests are low
func (rl *RateLimiter) calculateAggressiveDelay() time.Duration {
	// Spread the remaining requests over the time until reset
	untilReset := time.Until(rl.resetTime)
	spread := untilReset / time.Duration(rl.remaining)
	return min(max(spread, rl.config.AggressiveThrottleDelay), rl.config.MaxDelay)
}
