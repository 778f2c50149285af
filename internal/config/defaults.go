package config

import "time"

const (
	defaultPort             = 8080
	defaultEnv              = "development"
	defaultVersion          = "1.0.0"
	defaultOperationTimeout = 3 * time.Second

	defaultKafkaGroupID     = "delivery-manager"
	defaultKafkaIntakeTopic = "orders.intake"
	defaultKafkaEventsTopic = "delivery.events"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "delivery_db",
}

var defaultAuth = Auth{
	JWTSecret:             "your-secret-key-change-in-production",
	TokenTTL:              24 * time.Hour,
	DriverDefaultPassword: "defaultPassword123",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       100.0 / 60.0,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultAuthRateLimit = AuthRateLimit{PerMinute: 10}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultAPIProbe = APIProbe{
	Timeout: 3 * time.Second,
	Retry: RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    400 * time.Millisecond,
	},
}

var defaultStatsJob = StatsJob{Spec: "@every 30s"}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default auth settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultRateLimit returns the default global limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultAuthRateLimit returns the default /auth limiter settings.
func DefaultAuthRateLimit() AuthRateLimit {
	return defaultAuthRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}

// DefaultAPIProbe returns the default upstream probe settings.
func DefaultAPIProbe() APIProbe {
	return defaultAPIProbe
}

// DefaultStatsJob returns the default stats job settings.
func DefaultStatsJob() StatsJob {
	return defaultStatsJob
}
