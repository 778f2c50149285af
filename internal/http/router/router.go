package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/http/handlers"
	mw "delivery-manager/internal/http/middleware"
)

// Handlers groups the route handlers.
type Handlers struct {
	Base       *handlers.Handlers
	Auth       *handlers.AuthHandler
	Orders     *handlers.OrderHandler
	Drivers    *handlers.DriverHandler
	Deliveries *handlers.DeliveryHandler
	Dashboard  *handlers.DashboardHandler
	Health     *handlers.HealthHandler
}

// Middlewares are the cross-cutting wrappers. Nil entries are skipped.
type Middlewares struct {
	Observability  func(http.Handler) http.Handler
	RateLimit      func(http.Handler) http.Handler
	AuthRateLimit  func(http.Handler) http.Handler
	Authenticate   func(http.Handler) http.Handler
	Metrics        http.Handler
	RequestTimeout time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h Handlers, m Middlewares) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	use(r, m.Observability)
	r.Use(middleware.Recoverer)
	use(r, m.RateLimit)
	timeout := m.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	r.Get("/health", h.Health.Check)
	if m.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", m.Metrics)
	}

	r.Route("/auth", func(r chi.Router) {
		use(r, m.AuthRateLimit)
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
	})

	adminOnly := mw.RequireRole(domain.RoleAdmin)
	driverOnly := mw.RequireRole(domain.RoleDriver)

	r.Group(func(r chi.Router) {
		use(r, m.Authenticate)

		r.Get("/orders", h.Orders.List)
		r.With(adminOnly).Post("/orders", h.Orders.Create)
		r.With(adminOnly).Post("/orders/assign", h.Orders.Assign)

		r.Get("/drivers", h.Drivers.List)
		r.Get("/drivers/{id}", h.Drivers.GetByID)
		r.With(adminOnly).Post("/drivers", h.Drivers.Create)
		// владелец или админ, проверка в сервисе
		r.Put("/drivers/{id}", h.Drivers.Update)
		r.With(adminOnly).Delete("/drivers/{id}", h.Drivers.Delete)

		r.Get("/deliveries", h.Deliveries.List)
		r.With(driverOnly).Put("/deliveries/{id}", h.Deliveries.UpdateStatus)

		r.With(adminOnly).Get("/dashboard", h.Dashboard.Stats)
	})

	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	return r
}

func use(r chi.Router, m func(http.Handler) http.Handler) {
	if m != nil {
		r.Use(m)
	}
}
