package auth

import (
	"context"

	"delivery-manager/internal/domain"
)

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type passwordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

type tokenIssuer interface {
	Issue(u domain.User) (string, error)
}
