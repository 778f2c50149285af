package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/metrics"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		Env:              "test",
		Version:          "1.0.0",
		OperationTimeout: time.Second,
		Auth: config.Auth{
			JWTSecret:             "secret",
			TokenTTL:              time.Hour,
			DriverDefaultPassword: "defaultPassword123",
		},
		RateLimit:     config.RateLimit{Enabled: false},
		AuthRateLimit: config.AuthRateLimit{PerMinute: 10},
		StatsJob:      config.StatsJob{Spec: "@every 1h"},
	}
}

func provideStubMetrics(t *testing.T, c *dig.Container) {
	t.Helper()

	counter := func(name string) func() prometheus.Counter {
		return func() prometheus.Counter {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: name + "_unit", Help: "stub"})
		}
	}
	require.NoError(t, c.Provide(counter("rate_limit_exceeded_total"), dig.Name("rate_limit_exceeded_total")))
	require.NoError(t, c.Provide(counter("gateway_retries_total"), dig.Name("gateway_retries_total")))
	require.NoError(t, c.Provide(metrics.NewDashboardGauges))
}

func setupHTTPContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))
	provideStubMetrics(t, c)

	require.NoError(t, registerPublisher(c))
	require.NoError(t, registerUpstream(c))
	require.NoError(t, registerDomainServices(c))
	require.NoError(t, registerHTTP(c))
	require.NoError(t, registerJobs(c))

	return c
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.PprofConfig{Enabled: false, Addr: "0.0.0.0:6060"}

	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Greater(t, in.Main.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, in.Main.IdleTimeout, time.Duration(0))
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.PprofConfig{Enabled: true, Addr: "127.0.0.1:6060", User: "u", Pass: "p"}

	c := setupHTTPContainerWithCfg(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_RouterServesPublicRoutes(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainerWithCfg(t, testConfig())
	err := c.Invoke(func(mux http.Handler) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_UpstreamDisabled_NilChecker(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainerWithCfg(t, testConfig())
	err := c.Invoke(func(conn upstreamConn) {
		require.Nil(t, conn.conn)
		require.NoError(t, conn.Close())
	})
	require.NoError(t, err)
}

func swapDefaultRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()

	oldReg := prometheus.DefaultRegisterer
	oldGath := prometheus.DefaultGatherer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldReg
		prometheus.DefaultGatherer = oldGath
	})
	return reg
}

func TestProvideMetrics_Success_RegistersAndReturnsCollectors(t *testing.T) {
	reg := swapDefaultRegistry(t)

	out, err := provideMetrics()
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.GatewayRetriesTotal)
	require.NotNil(t, out.DashboardGauges)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "delivery_orders_total")
	require.Contains(t, names, "delivery_drivers_available")
}

func TestProvideMetrics_AlreadyRegistered_ReturnsExistingCollectors(t *testing.T) {
	reg := swapDefaultRegistry(t)

	// те же метрики юзаем
	existingRL := metrics.NewRateLimitExceededTotal()
	existingGR := metrics.NewGatewayRetriesTotal()
	existingGauges := metrics.NewDashboardGauges()

	require.NoError(t, reg.Register(existingRL))
	require.NoError(t, reg.Register(existingGR))
	for _, g := range existingGauges.Collectors() {
		require.NoError(t, reg.Register(g))
	}

	out, err := provideMetrics()
	require.NoError(t, err)

	require.Same(t, existingRL, out.RateLimitExceededTotal)
	require.Same(t, existingGR, out.GatewayRetriesTotal)
	require.Same(t, existingGauges.OrdersTotal, out.DashboardGauges.OrdersTotal)
}

type errRegisterer struct{ err error }

func (e errRegisterer) Register(prometheus.Collector) error  { return e.err }
func (e errRegisterer) MustRegister(...prometheus.Collector) {}
func (e errRegisterer) Unregister(prometheus.Collector) bool { return false }

func TestProvideMetrics_RegisterError_NotAlreadyRegistered(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = errRegisterer{err: errors.New("boom")}
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })

	_, err := provideMetrics()
	require.Error(t, err)
	require.Contains(t, err.Error(), "register rate_limit_exceeded_total")
}
