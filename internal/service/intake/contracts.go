//go:generate mockgen -source=contracts.go -destination=intake_mocks_test.go -package=intake_test

package intake

import (
	"context"

	"delivery-manager/internal/domain"
)

// OrderCreator abstracts order creation for "created" events.
type OrderCreator interface {
	Create(ctx context.Context, in domain.Order) (domain.Order, error)
}

// Assigner abstracts the atomic driver assignment for "assign" events.
type Assigner interface {
	Assign(ctx context.Context, orderID, driverID int64) (domain.AssignResult, error)
}
