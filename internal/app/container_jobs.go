package app

import (
	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/jobs"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/metrics"
	"delivery-manager/internal/service/dashboard"
)

func registerJobs(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, svc *dashboard.Service, gauges *metrics.DashboardGauges, logger logx.Logger) (*jobs.StatsJob, error) {
			return jobs.NewStatsJob(cfg.StatsJob.Spec, svc, gauges, logger)
		},
	)
}
