package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBuckets settings.
type Config struct {
	Rate       float64       // токенов в секунду
	Burst      int           // ёмкость корзины
	TTL        time.Duration // простаивающие корзины удаляются, 0 выключает очистку
	MaxBuckets int           // 0 без ограничения
}

// TokenBuckets keeps one token bucket per client key.
type TokenBuckets struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	lastSweep time.Time
}

type tokenBucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// NewTokenBuckets creates a limiter. A nil clock means wall time.
func NewTokenBuckets(clock Clock, cfg Config) *TokenBuckets {
	if clock == nil {
		clock = systemClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBuckets{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*tokenBucket),
	}
}

// PerMinute allows limit requests per key per minute, all of them available at once.
func PerMinute(clock Clock, limit int, ttl time.Duration) *TokenBuckets {
	if limit <= 0 {
		limit = 1
	}
	return NewTokenBuckets(clock, Config{
		Rate:  float64(limit) / time.Minute.Seconds(),
		Burst: limit,
		TTL:   ttl,
	})
}

// Allow takes one token from the key's bucket.
func (l *TokenBuckets) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		// новых клиентов не пускаем, когда таблица переполнена
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			return false
		}
		b = &tokenBucket{tokens: float64(l.cfg.Burst), refilled: now}
		l.buckets[key] = b
	}
	b.seen = now

	if elapsed := now.Sub(b.refilled); elapsed > 0 {
		b.tokens = min(float64(l.cfg.Burst), b.tokens+elapsed.Seconds()*l.cfg.Rate)
		b.refilled = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked keys.
func (l *TokenBuckets) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per max(TTL/2, 1m). Caller holds mu.
func (l *TokenBuckets) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	every := max(l.cfg.TTL/2, time.Minute)
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < every {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
}
