package dashboard

import (
	"context"
	"time"

	"delivery-manager/internal/domain"
)

type statsRepository interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

// Service serves the admin dashboard counters.
type Service struct {
	repo             statsRepository
	operationTimeout time.Duration
}

// NewService creates a dashboard Service.
func NewService(r statsRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

// Stats returns the current counters.
func (s *Service) Stats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.Dashboard(ctx)
}
