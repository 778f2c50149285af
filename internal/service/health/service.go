package health

import (
	"context"
	"sync"
	"time"

	"delivery-manager/internal/logx"
)

// Overall and per-service statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"

	APIOnline   = "online"
	APIOffline  = "offline"
	APIDisabled = "disabled"
)

// Pinger checks the database connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// APIChecker checks the upstream API.
type APIChecker interface {
	Check(ctx context.Context) error
}

// Probe is the outcome of one dependency check.
// ResponseTime is nil when the probe did not run.
type Probe struct {
	Status       string
	ResponseTime *time.Duration
	Error        string
}

// Services groups the per-dependency probes.
type Services struct {
	Database Probe
	API      Probe
}

// Report is the composite health verdict.
type Report struct {
	Status      string
	Timestamp   time.Time
	Database    string
	Environment string
	Uptime      time.Duration
	Version     string
	Services    Services
}

// Options configures a Service.
type Options struct {
	Environment string
	Version     string
	DBTimeout   time.Duration
	APITimeout  time.Duration
}

// Service composes the database and upstream API probes.
type Service struct {
	db      Pinger
	api     APIChecker
	opts    Options
	started time.Time
	now     func() time.Time
	logger  logx.Logger
}

// NewService creates a health Service. A nil api reports the API probe as disabled.
func NewService(db Pinger, api APIChecker, opts Options, logger logx.Logger) *Service {
	if opts.DBTimeout <= 0 {
		opts.DBTimeout = 5 * time.Second
	}
	if opts.APITimeout <= 0 {
		opts.APITimeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		db:      db,
		api:     api,
		opts:    opts,
		started: time.Now(),
		now:     time.Now,
		logger:  logger,
	}
}

// Check runs both probes concurrently and never fails: the verdict is in the report.
func (s *Service) Check(ctx context.Context) Report {
	var (
		wg       sync.WaitGroup
		database Probe
		api      Probe
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		database = s.probeDatabase(ctx)
	}()
	go func() {
		defer wg.Done()
		api = s.probeAPI(ctx)
	}()
	wg.Wait()

	now := s.now()
	status := StatusOK
	if database.Status != DatabaseConnected || api.Status == APIOffline {
		status = StatusError
	}
	return Report{
		Status:      status,
		Timestamp:   now.UTC(),
		Database:    database.Status,
		Environment: s.opts.Environment,
		Uptime:      now.Sub(s.started),
		Version:     s.opts.Version,
		Services:    Services{Database: database, API: api},
	}
}

func (s *Service) probeDatabase(ctx context.Context) Probe {
	ctx, cancel := context.WithTimeout(ctx, s.opts.DBTimeout)
	defer cancel()

	start := s.now()
	err := s.db.Ping(ctx)
	took := s.now().Sub(start)
	if err != nil {
		s.logger.Warn("database health check failed", logx.Err(err))
		return Probe{Status: DatabaseDisconnected, ResponseTime: &took, Error: err.Error()}
	}
	return Probe{Status: DatabaseConnected, ResponseTime: &took}
}

func (s *Service) probeAPI(ctx context.Context) Probe {
	if s.api == nil {
		return Probe{Status: APIDisabled}
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.APITimeout)
	defer cancel()

	start := s.now()
	err := s.api.Check(ctx)
	took := s.now().Sub(start)
	if err != nil {
		s.logger.Warn("api health check failed", logx.Err(err))
		return Probe{Status: APIOffline, ResponseTime: &took, Error: err.Error()}
	}
	return Probe{Status: APIOnline, ResponseTime: &took}
}
