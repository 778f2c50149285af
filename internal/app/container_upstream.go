package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"delivery-manager/internal/config"
	"delivery-manager/internal/gateway/upstream"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/service/health"
)

// upstreamConn is the optional gRPC connection to the upstream API.
type upstreamConn struct {
	conn *grpc.ClientConn
}

func (u upstreamConn) Close() error {
	if u.conn == nil {
		return nil
	}
	return u.conn.Close()
}

var dialUpstream = upstream.Dial

func newUpstreamConn(cfg *config.Config, logger logx.Logger) (upstreamConn, error) {
	if cfg.APIProbe.Addr == "" {
		logger.Info("upstream api probe disabled")
		return upstreamConn{}, nil
	}
	conn, err := dialUpstream(cfg.APIProbe.Addr)
	if err != nil {
		return upstreamConn{}, err
	}
	return upstreamConn{conn: conn}, nil
}

type apiCheckerIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Conn    upstreamConn
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newAPIChecker returns nil when the probe is not configured, which health reports as disabled.
func newAPIChecker(in apiCheckerIn) health.APIChecker {
	if in.Conn.conn == nil {
		return nil
	}
	gw := upstream.NewHealthGateway(healthpb.NewHealthClient(in.Conn.conn), "")
	retry := in.Cfg.APIProbe.Retry
	return upstream.NewRetryingGateway(gw, in.Logger, in.Retries, upstream.RetryConfig{
		MaxAttempts: retry.MaxAttempts,
		BaseDelay:   retry.BaseDelay,
		MaxDelay:    retry.MaxDelay,
	})
}

func newHealthService(cfg *config.Config, pool *pgxpool.Pool, api health.APIChecker, logger logx.Logger) *health.Service {
	return health.NewService(pool, api, health.Options{
		Environment: cfg.Env,
		Version:     cfg.Version,
		APITimeout:  cfg.APIProbe.Timeout,
	}, logger)
}

func registerUpstream(container *dig.Container) error {
	return provideAll(container,
		newUpstreamConn,
		newAPIChecker,
		newHealthService,
	)
}
