package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"delivery-manager/internal/jobs"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the API process
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner bound to the real run loop
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Any("err", err))
		panic(err)
	}
}

type runIn struct {
	dig.In

	Ctx       context.Context
	Logger    logx.Logger
	Pool      *pgxpool.Pool
	Server    *http.Server
	Pprof     *http.Server `name:"pprof_server" optional:"true"`
	StatsJob  *jobs.StatsJob
	Publisher *kafka.Publisher
	Upstream  upstreamConn
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runIn) error {
	errCh := make(chan error, 2)
	startServer(in.Server, in.Logger, "api", errCh)
	if in.Pprof != nil {
		startServer(in.Pprof, in.Logger, "pprof", errCh)
	}
	if in.StatsJob != nil {
		in.StatsJob.Start(in.Ctx)
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down delivery-manager")
		runErr = in.Ctx.Err()
	case err := <-errCh:
		in.Logger.Error("server failed", logx.Any("err", err))
		runErr = err
	}

	if in.StatsJob != nil {
		<-in.StatsJob.Stop().Done()
	}
	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Pprof != nil {
		gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
	}
	closeResources(in)
	return runErr
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("http server listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(in runIn) {
	if err := in.Publisher.Close(); err != nil {
		in.Logger.Error("kafka publisher close error", logx.Any("err", err))
	}
	if err := in.Upstream.Close(); err != nil {
		in.Logger.Error("upstream close error", logx.Any("err", err))
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
