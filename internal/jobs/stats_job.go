package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// DefaultStatsSpec refreshes the dashboard gauges every 30 seconds.
const DefaultStatsSpec = "@every 30s"

type statsReader interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

type gaugeSetter interface {
	Set(s domain.DashboardStats)
}

// StatsJob copies the dashboard counters into Prometheus gauges on a cron schedule.
type StatsJob struct {
	cron    *cron.Cron
	stats   statsReader
	gauges  gaugeSetter
	logger  logx.Logger
	timeout time.Duration
	baseCtx context.Context
	stopped chan struct{}
}

// NewStatsJob schedules the job. An empty spec means DefaultStatsSpec.
func NewStatsJob(spec string, stats statsReader, gauges gaugeSetter, logger logx.Logger) (*StatsJob, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	if spec == "" {
		spec = DefaultStatsSpec
	}
	j := &StatsJob{
		stats:   stats,
		gauges:  gauges,
		logger:  logger,
		timeout: 5 * time.Second,
		baseCtx: context.Background(),
		stopped: make(chan struct{}),
	}
	cl := cronLogger{logger: logger}
	j.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := j.cron.AddFunc(spec, j.tick); err != nil {
		return nil, fmt.Errorf("schedule stats job %q: %w", spec, err)
	}
	return j, nil
}

// Start runs the job once right away, then on schedule. The scheduler halts when
// ctx is done or Stop is called; Stopped is closed once ctx-driven shutdown finishes.
func (j *StatsJob) Start(ctx context.Context) {
	j.baseCtx = ctx
	j.tick()
	j.cron.Start()
	go func() {
		<-ctx.Done()
		<-j.cron.Stop().Done()
		close(j.stopped)
	}()
}

// Stopped is closed after the scheduler was halted by the Start context.
func (j *StatsJob) Stopped() <-chan struct{} { return j.stopped }

// Stop halts the scheduler. The returned context is done when a running tick finishes.
func (j *StatsJob) Stop() context.Context {
	return j.cron.Stop()
}

// RunOnce reads the counters and updates the gauges.
func (j *StatsJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	s, err := j.stats.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read dashboard stats: %w", err)
	}
	j.gauges.Set(s)
	return nil
}

func (j *StatsJob) tick() {
	if j.baseCtx.Err() != nil {
		return
	}
	if err := j.RunOnce(j.baseCtx); err != nil {
		j.logger.Error("stats job failed", logx.Any("err", err))
	}
}

// cronLogger пробрасывает логи cron в наш логгер
type cronLogger struct {
	logger logx.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := append(kvFields(keysAndValues), logx.Any("err", err))
	l.logger.Error("cron: "+msg, fields...)
}

func kvFields(kv []any) []logx.Field {
	out := make([]logx.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logx.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
