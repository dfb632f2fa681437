package ratelimiter

import (
	"sync"
	"time"
)

// limiter is a token bucket for one identity.
type limiter struct {
	tokens     float64
	lastRefill time.Time
	expiresAt  time.Time
}

// UserRateLimiter manages token buckets keyed by identity (user id, IP).
// Idle buckets are dropped lazily once their expiration passes.
type UserRateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*limiter
	rate           float64 // tokens per second
	capacity       float64
	expirationTime time.Duration
}

func New(rate, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*limiter),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func OnceInSecond() *UserRateLimiter {
	return New(1, 1, time.Hour)
}

func Rps10() *UserRateLimiter {
	return New(10, 10, time.Hour)
}

func Rps100() *UserRateLimiter {
	return New(100, 100, time.Hour)
}

// Allow reports whether the identity may proceed and consumes a token if so.
func (u *UserRateLimiter) Allow(identity string) bool {
	now := time.Now()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.evictExpired(now)

	l, ok := u.limiters[identity]
	if !ok {
		l = &limiter{tokens: u.capacity, lastRefill: now}
		u.limiters[identity] = l
	}

	elapsed := now.Sub(l.lastRefill).Seconds()
	l.tokens = min(u.capacity, l.tokens+elapsed*u.rate)
	l.lastRefill = now
	l.expiresAt = now.Add(u.expirationTime)

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

func (u *UserRateLimiter) evictExpired(now time.Time) {
	for id, l := range u.limiters {
		if !l.expiresAt.IsZero() && now.After(l.expiresAt) {
			delete(u.limiters, id)
		}
	}
}
