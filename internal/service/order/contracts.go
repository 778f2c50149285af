package order

import (
	"context"

	"delivery-manager/internal/domain"
)

type orderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
}
