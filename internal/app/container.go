package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"delivery-manager/internal/auth"
	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/repository"
	authsvc "delivery-manager/internal/service/auth"
	"delivery-manager/internal/service/dashboard"
	"delivery-manager/internal/service/delivery"
	"delivery-manager/internal/service/driver"
	"delivery-manager/internal/service/order"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: openDatabase,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container or exits
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"core", func() error { return registerCore(container, ctx) }},
		{"DB", func() error { return registerDb(container, b.dbConnect) }},
		{"metrics", func() error { return provideAll(container, provideMetrics) }},
		{"messaging", func() error { return registerPublisher(container) }},
		{"upstream", func() error { return registerUpstream(container) }},
		{"service", func() error { return registerDomainServices(container) }},
		{"http", func() error { return registerHTTP(container) }},
		{"jobs", func() error { return registerJobs(container) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return container, nil
}

// MustBuildContainer builds the API container with default settings
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type operationTimeout time.Duration

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) operationTimeout { return operationTimeout(cfg.OperationTimeout) },
		repository.NewUserRepo,
		repository.NewOrderRepo,
		repository.NewDeliveryRepo,
		repository.NewStatsRepo,
		func(cfg *config.Config) *auth.TokenManager {
			return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		},
		func() auth.PasswordHasher { return auth.NewPasswordHasher(auth.DefaultCost) },
		func(users *repository.UserRepo, h auth.PasswordHasher, tokens *auth.TokenManager, t operationTimeout, logger logx.Logger) *authsvc.Service {
			return authsvc.NewService(users, h, tokens, time.Duration(t), logger)
		},
		func(repo *repository.OrderRepo, t operationTimeout, logger logx.Logger) *order.Service {
			return order.NewService(repo, time.Duration(t), logger)
		},
		func(repo *repository.UserRepo, h auth.PasswordHasher, cfg *config.Config, t operationTimeout, logger logx.Logger) *driver.Service {
			return driver.NewService(repo, h, cfg.Auth.DriverDefaultPassword, time.Duration(t), logger)
		},
		func(repo *repository.DeliveryRepo, events delivery.EventPublisher, t operationTimeout, logger logx.Logger) *delivery.Service {
			return delivery.NewDeliveryService(repo, events, time.Duration(t), logger)
		},
		func(repo *repository.StatsRepo, t operationTimeout) *dashboard.Service {
			return dashboard.NewService(repo, time.Duration(t))
		},
	)
}
