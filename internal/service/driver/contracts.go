package driver

import (
	"context"

	"delivery-manager/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateDriver(ctx context.Context, u domain.PartialDriverUpdate) (*domain.User, error)
	DeleteDriver(ctx context.Context, id int64) (bool, error)
}

type passwordHasher interface {
	Hash(plain string) (string, error)
}
