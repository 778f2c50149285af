package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-manager/internal/domain"
)

// StatsRepo computes dashboard aggregates.
type StatsRepo struct{ db *pgxpool.Pool }

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(db *pgxpool.Pool) *StatsRepo { return &StatsRepo{db: db} }

// Dashboard reads all counters in one statement so they share a snapshot.
func (r *StatsRepo) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := r.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM orders),
            (SELECT COUNT(*) FROM users WHERE role = 'driver' AND is_available),
            (SELECT COUNT(*) FROM orders WHERE status = $1),
            (SELECT COUNT(*) FROM orders WHERE status = ANY($2))
    `, string(domain.OrderDelivered), statusStrings(domain.InProgressOrderStatuses()),
	).Scan(&s.TotalOrders, &s.TotalAvailableDrivers, &s.TotalCompletedOrders, &s.TotalInProgressOrders)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return s, nil
}

func statusStrings(in []domain.OrderStatus) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
