package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	Env              string
	Version          string
	OperationTimeout time.Duration

	DB            DB
	Auth          Auth
	RateLimit     RateLimit
	AuthRateLimit AuthRateLimit
	Pprof         PprofConfig
	Kafka         Kafka
	APIProbe      APIProbe
	StatsJob      StatsJob
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Auth stores token and credential settings.
type Auth struct {
	JWTSecret             string
	TokenTTL              time.Duration
	DriverDefaultPassword string
}

// RateLimit stores global per-IP limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// AuthRateLimit stores the limiter settings for /auth routes.
type AuthRateLimit struct {
	PerMinute int
}

// PprofConfig stores pprof server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Kafka stores broker settings. Empty Brokers disables messaging.
type Kafka struct {
	Brokers     []string
	GroupID     string
	IntakeTopic string
	EventsTopic string
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// APIProbe stores the upstream gRPC health probe settings. Empty Addr disables it.
type APIProbe struct {
	Addr    string
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig describes retries with exponential backoff.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// StatsJob stores the dashboard gauges job schedule.
type StatsJob struct {
	Spec string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             DefaultPort(),
		Env:              envOr("APP_ENV", defaultEnv),
		Version:          envOr("APP_VERSION", defaultVersion),
		OperationTimeout: defaultOperationTimeout,
		DB:               DefaultDB(),
		Auth:             DefaultAuth(),
		RateLimit:        DefaultRateLimit(),
		AuthRateLimit:    DefaultAuthRateLimit(),
		Pprof:            DefaultPprof(),
		APIProbe:         DefaultAPIProbe(),
		StatsJob:         DefaultStatsJob(),
	}

	p := &envParser{}
	cfg.Port = p.intVar("PORT", cfg.Port)
	cfg.OperationTimeout = p.duration("OPERATION_TIMEOUT", cfg.OperationTimeout)

	cfg.DB.Host = envOr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envOr("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envOr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envOr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envOr("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		p.fail("POSTGRES_PORT", cfg.DB.Port)
	}

	cfg.Auth.JWTSecret = envOr("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = p.duration("JWT_TTL", cfg.Auth.TokenTTL)
	cfg.Auth.DriverDefaultPassword = envOr("DRIVER_DEFAULT_PASSWORD", cfg.Auth.DriverDefaultPassword)

	cfg.RateLimit.Enabled = p.boolVar("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = p.float("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = p.intVar("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = p.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = p.intVar("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)
	cfg.AuthRateLimit.PerMinute = p.intVar("AUTH_RATE_LIMIT_PER_MINUTE", cfg.AuthRateLimit.PerMinute)

	cfg.Pprof.Enabled = p.boolVar("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.Addr = envOr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envOr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envOr("PPROF_PASS", cfg.Pprof.Pass)

	cfg.Kafka.Brokers = splitCSV(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.GroupID = envOr("KAFKA_GROUP_ID", defaultKafkaGroupID)
	cfg.Kafka.IntakeTopic = envOr("KAFKA_INTAKE_TOPIC", defaultKafkaIntakeTopic)
	cfg.Kafka.EventsTopic = envOr("KAFKA_EVENTS_TOPIC", defaultKafkaEventsTopic)

	cfg.APIProbe.Addr = strings.TrimSpace(os.Getenv("API_GRPC_ADDR"))
	cfg.APIProbe.Timeout = p.duration("API_PROBE_TIMEOUT", cfg.APIProbe.Timeout)
	cfg.APIProbe.Retry.MaxAttempts = p.intVar("API_PROBE_MAX_ATTEMPTS", cfg.APIProbe.Retry.MaxAttempts)
	cfg.APIProbe.Retry.BaseDelay = p.duration("API_PROBE_BASE_DELAY", cfg.APIProbe.Retry.BaseDelay)
	cfg.APIProbe.Retry.MaxDelay = p.duration("API_PROBE_MAX_DELAY", cfg.APIProbe.Retry.MaxDelay)

	cfg.StatsJob.Spec = envOr("STATS_JOB_SPEC", cfg.StatsJob.Spec)

	if p.err != nil {
		return nil, p.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("invalid JWT_SECRET: empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid JWT_TTL: %s", c.Auth.TokenTTL)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid OPERATION_TIMEOUT: %s", c.OperationTimeout)
	}
	if c.APIProbe.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid API_PROBE_MAX_ATTEMPTS: %d", c.APIProbe.Retry.MaxAttempts)
	}
	return nil
}

// envParser collects the first malformed variable so Load reports one clear error.
type envParser struct{ err error }

func (p *envParser) fail(key, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %q", key, raw)
	}
}

func (p *envParser) intVar(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw)
		return def
	}
	return v
}

func (p *envParser) float(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw)
		return def
	}
	return v
}

func (p *envParser) boolVar(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw)
		return def
	}
	return v
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw)
		return def
	}
	return v
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
