package deliverytx

import (
	"context"

	"delivery-manager/internal/domain"
)

// Repository is the set of store operations available inside one transaction.
// Lookups return (nil, nil) when the row does not exist.
type Repository interface {
	// GetDriverForShare loads a user and holds a share lock until commit,
	// so the driver cannot be deleted or made unavailable mid-assignment.
	GetDriverForShare(ctx context.Context, id int64) (*domain.User, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// AssignOrder moves a pending order to assigned. It returns nil when the
	// order was no longer pending at write time.
	AssignOrder(ctx context.Context, orderID, driverID int64) (*domain.Order, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateDelivery(ctx context.Context, d *domain.Delivery) error
	MarkOrderDelivered(ctx context.Context, orderID int64) error
}

// Runner runs fn inside a transaction, committing on nil and rolling back otherwise.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
