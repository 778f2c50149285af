package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"delivery-manager/internal/domain"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// DashboardGauges mirror the admin dashboard counters.
type DashboardGauges struct {
	OrdersTotal      prometheus.Gauge
	OrdersCompleted  prometheus.Gauge
	OrdersInProgress prometheus.Gauge
	DriversAvailable prometheus.Gauge
}

// NewDashboardGauges creates unregistered dashboard gauges.
func NewDashboardGauges() *DashboardGauges {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	}
	return &DashboardGauges{
		OrdersTotal:      gauge("delivery_orders_total", "Number of orders"),
		OrdersCompleted:  gauge("delivery_orders_completed", "Number of delivered orders"),
		OrdersInProgress: gauge("delivery_orders_in_progress", "Number of assigned or in-progress orders"),
		DriversAvailable: gauge("delivery_drivers_available", "Number of available drivers"),
	}
}

// Collectors returns the gauges for registration.
func (g *DashboardGauges) Collectors() []prometheus.Collector {
	return []prometheus.Collector{g.OrdersTotal, g.OrdersCompleted, g.OrdersInProgress, g.DriversAvailable}
}

// Set copies s into the gauges.
func (g *DashboardGauges) Set(s domain.DashboardStats) {
	g.OrdersTotal.Set(float64(s.TotalOrders))
	g.OrdersCompleted.Set(float64(s.TotalCompletedOrders))
	g.OrdersInProgress.Set(float64(s.TotalInProgressOrders))
	g.DriversAvailable.Set(float64(s.TotalAvailableDrivers))
}
