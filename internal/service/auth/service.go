package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// Service authenticates users and issues session tokens.
type Service struct {
	users            userRepository
	hasher           passwordHasher
	tokens           tokenIssuer
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates an auth Service.
func NewService(users userRepository, h passwordHasher, tokens tokenIssuer, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		users:            users,
		hasher:           h,
		tokens:           tokens,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func errInvalidCredentials() error {
	return apperr.New(apperr.ErrUnauthenticated, "Invalid credentials")
}

// Login checks the credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", apperr.New(apperr.ErrInvalid, "Email and password are required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", err
	}
	// одинаковый ответ для неизвестного email и неверного пароля
	if u == nil || !s.hasher.Compare(u.PasswordHash, password) {
		return domain.User{}, "", errInvalidCredentials()
	}

	token, err := s.tokens.Issue(*u)
	if err != nil {
		return domain.User{}, "", err
	}
	return *u, token, nil
}

// Register creates an account and logs it in. Drivers start available.
func (s *Service) Register(ctx context.Context, in domain.User, password string) (domain.User, string, error) {
	u := domain.User{
		Email: domain.NormalizeEmail(in.Email),
		Role:  in.Role,
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}
	if u.Email == "" || password == "" || u.Name == "" || u.Role == "" {
		return domain.User{}, "", apperr.New(apperr.ErrInvalid, "Email, password, name, and role are required")
	}
	if !u.Role.Valid() {
		return domain.User{}, "", apperr.New(apperr.ErrInvalid, "role must be admin or driver")
	}
	u.IsAvailable = u.IsDriver()

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, "", err
	}
	u.PasswordHash = hash

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return domain.User{}, "", apperr.New(apperr.ErrConflict, "User already exists")
		}
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return domain.User{}, "", err
	}

	s.logger.Info("user registered",
		logx.Int64("user_id", u.ID),
		logx.String("role", string(u.Role)),
	)
	return u, token, nil
}
