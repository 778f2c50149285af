package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"delivery-manager/internal/auth"
	"delivery-manager/internal/config"
	"delivery-manager/internal/http/handlers"
	"delivery-manager/internal/http/middleware"
	"delivery-manager/internal/http/middleware/ratelimit"
	"delivery-manager/internal/http/pprofserver"
	"delivery-manager/internal/http/router"
	"delivery-manager/internal/logx"
	authsvc "delivery-manager/internal/service/auth"
	"delivery-manager/internal/service/dashboard"
	"delivery-manager/internal/service/delivery"
	"delivery-manager/internal/service/driver"
	"delivery-manager/internal/service/health"
	"delivery-manager/internal/service/order"
)

type handlersIn struct {
	dig.In

	Logger     logx.Logger
	Auth       *authsvc.Service
	Orders     *order.Service
	Drivers    *driver.Service
	Deliveries *delivery.Service
	Dashboard  *dashboard.Service
	Health     *health.Service
}

func newRouterHandlers(in handlersIn) router.Handlers {
	return router.Handlers{
		Base:       handlers.New(in.Logger),
		Auth:       handlers.NewAuthHandler(in.Logger, in.Auth),
		Orders:     handlers.NewOrderHandler(in.Logger, in.Orders, in.Deliveries),
		Drivers:    handlers.NewDriverHandler(in.Logger, in.Drivers),
		Deliveries: handlers.NewDeliveryHandler(in.Logger, in.Deliveries),
		Dashboard:  handlers.NewDashboardHandler(in.Logger, in.Dashboard),
		Health:     handlers.NewHealthHandler(in.Logger, in.Health),
	}
}

type middlewaresIn struct {
	dig.In

	Cfg        *config.Config
	Logger     logx.Logger
	Tokens     *auth.TokenManager
	GlobalRate *ratelimit.Middleware `name:"global_rate_limit"`
	AuthRate   *ratelimit.Middleware `name:"auth_rate_limit"`
}

func newRouterMiddlewares(in middlewaresIn) router.Middlewares {
	return router.Middlewares{
		Observability:  middleware.Observability(in.Logger),
		RateLimit:      in.GlobalRate.Handler(),
		AuthRateLimit:  in.AuthRate.Handler(),
		Authenticate:   middleware.Authenticate(in.Tokens, in.Logger),
		Metrics:        promhttp.Handler(),
		RequestTimeout: 10 * time.Second,
	}
}

type serversOut struct {
	dig.Out

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server"`
}

func newServers(cfg *config.Config, mux http.Handler) serversOut {
	out := serversOut{
		Main: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	if cfg.Pprof.Enabled {
		out.Pprof = pprofserver.NewServer(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		})
	}
	return out
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		newRateLimitMiddlewares,
		newRouterHandlers,
		newRouterMiddlewares,
		router.New,
		newServers,
	)
}
