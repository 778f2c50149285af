package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/http/middleware/ratelimit"
	"delivery-manager/internal/logx"
)

func newGlobalLimiter(cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewTokenBuckets(nil, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newAuthLimiter(cfg *config.Config) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return ratelimit.Unlimited{}
	}
	return ratelimit.PerMinute(nil, cfg.AuthRateLimit.PerMinute, cfg.RateLimit.TTL)
}

type rateLimitIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

type rateLimitOut struct {
	dig.Out

	Global *ratelimit.Middleware `name:"global_rate_limit"`
	Auth   *ratelimit.Middleware `name:"auth_rate_limit"`
}

func newRateLimitMiddlewares(in rateLimitIn) rateLimitOut {
	return rateLimitOut{
		Global: ratelimit.New("global", in.Logger, in.Counter, newGlobalLimiter(in.Cfg)),
		Auth:   ratelimit.New("auth", in.Logger, in.Counter, newAuthLimiter(in.Cfg)),
	}
}
