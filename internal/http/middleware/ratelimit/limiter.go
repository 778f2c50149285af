package ratelimit

import "time"

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Unlimited lets every request through. Used when rate limiting is switched off.
type Unlimited struct{}

// Allow always returns true.
func (Unlimited) Allow(string) bool { return true }
