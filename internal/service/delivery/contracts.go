//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/ports/deliverytx"
)

type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error)
	ListWithOrders(ctx context.Context, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error)
}

// EventPublisher emits workflow events after a committed change.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
}
