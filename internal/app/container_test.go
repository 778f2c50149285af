package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/service/delivery"
	"delivery-manager/internal/service/driver"
	"delivery-manager/internal/transport/kafka"
)

func stubConnect(pool *pgxpool.Pool, err error) dbConnectFunc {
	return func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
		return pool, err
	}
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "provide app.bad")
}

func TestRegisterCore_ProvidesContext(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.WithValue(context.Background(), struct{}{}, "marker")

	require.NoError(t, registerCore(c, ctx))

	err := c.Invoke(func(got context.Context) {
		require.Equal(t, ctx, got)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesDbConnectAndProvidesPool(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	cfg := &config.Config{
		DB: config.DB{
			Host: "localhost",
			Port: "5432",
			User: "user",
			Pass: "pass",
			Name: "db",
		},
	}

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))

	stubPool := &pgxpool.Pool{}

	connect := func(
		gotCtx context.Context,
		_ logx.Logger,
		dsn string,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}

	require.NoError(t, registerDb(c, connect))

	err := c.Invoke(func(pool *pgxpool.Pool) {
		require.Same(t, stubPool, pool)
	})
	require.NoError(t, err)
}

func TestRegisterDb_ConnectError(t *testing.T) {
	t.Parallel()

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(testConfig))
	require.NoError(t, c.Provide(logx.Nop))

	require.NoError(t, registerDb(c, stubConnect(nil, errors.New("db failed"))))

	err := c.Invoke(func(*pgxpool.Pool) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
}

func TestRegisterDomainServices_ResolvesServices(t *testing.T) {
	t.Parallel()

	c := dig.New()
	require.NoError(t, c.Provide(testConfig))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))
	require.NoError(t, registerPublisher(c))
	require.NoError(t, registerDomainServices(c))

	err := c.Invoke(func(p *kafka.Publisher, d *delivery.Service, dr *driver.Service, t2 operationTimeout) {
		require.Nil(t, p)
		require.NotNil(t, d)
		require.NotNil(t, dr)
		require.Equal(t, operationTimeout(time.Second), t2)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_Success(t *testing.T) {
	t.Parallel()

	c, err := NewContainerBuilder().
		WithDBConnect(stubConnect(&pgxpool.Pool{}, nil)).
		build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestContainerBuilder_WithNilOptions_KeepsDefaults(t *testing.T) {
	t.Parallel()

	b := NewContainerBuilder().WithDBConnect(nil).WithLogFatalf(nil)
	require.NotNil(t, b.dbConnect)
	require.NotNil(t, b.logFatalf)
}

func TestContainerBuilder_MustBuild_DoesNotCallFatalOnSuccess(t *testing.T) {
	t.Parallel()

	builder := NewContainerBuilder().
		WithDBConnect(stubConnect(&pgxpool.Pool{}, nil)).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	c := builder.MustBuild(context.Background())
	require.NotNil(t, c)
}

func TestBuildWorkerContainer_Success(t *testing.T) {
	t.Parallel()

	c, err := buildWorkerContainer(context.Background(), stubConnect(&pgxpool.Pool{}, nil))
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestRegisterIntake_NoBrokers_NilConsumer(t *testing.T) {
	t.Parallel()

	c := dig.New()
	require.NoError(t, c.Provide(testConfig))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))
	require.NoError(t, registerPublisher(c))
	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerIntake(c))

	err := c.Invoke(func(consumer *kafka.Consumer) {
		require.Nil(t, consumer)
	})
	require.NoError(t, err)
}
