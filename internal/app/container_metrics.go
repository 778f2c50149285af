package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-manager/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	DashboardGauges        *metrics.DashboardGauges
}

// provideMetrics registers the service collectors in the default registry.
// Повторная сборка контейнера (тесты, воркер) получает уже зарегистрированные метрики.
func provideMetrics() (metricsOut, error) {
	rl, err := registerCollector("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerCollector("gateway_retries_total", metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}

	gauges := metrics.NewDashboardGauges()
	for name, g := range map[string]*prometheus.Gauge{
		"delivery_orders_total":       &gauges.OrdersTotal,
		"delivery_orders_completed":   &gauges.OrdersCompleted,
		"delivery_orders_in_progress": &gauges.OrdersInProgress,
		"delivery_drivers_available":  &gauges.DriversAvailable,
	} {
		if *g, err = registerCollector(name, *g); err != nil {
			return metricsOut{}, err
		}
	}

	return metricsOut{
		RateLimitExceededTotal: rl,
		GatewayRetriesTotal:    gr,
		DashboardGauges:        gauges,
	}, nil
}

func registerCollector[T prometheus.Collector](name string, c T) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
