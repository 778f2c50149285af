package driver

import (
	"context"
	"errors"
	"strings"
	"time"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// Service coordinates driver business logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	hasher           passwordHasher
	defaultPassword  string
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a driver Service.
// defaultPassword is used when an admin creates a driver without one.
func NewService(r driverRepository, h passwordHasher, defaultPassword string, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		hasher:           h,
		defaultPassword:  defaultPassword,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func errDriverNotFound() error {
	return apperr.New(apperr.ErrNotFound, "Driver not found")
}

// List returns drivers, optionally only the available ones.
func (s *Service) List(ctx context.Context, f domain.DriverFilter) ([]domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListDrivers(ctx, f)
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperr.New(apperr.ErrInvalid, "Driver ID is required")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if u == nil || !u.IsDriver() {
		return domain.User{}, errDriverNotFound()
	}
	return *u, nil
}

// Create registers a new available driver. An empty password falls back to the default one.
func (s *Service) Create(ctx context.Context, in domain.User, password string) (domain.User, error) {
	u := domain.User{
		Email:         domain.NormalizeEmail(in.Email),
		Role:          domain.RoleDriver,
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		IsAvailable:   true,
		VehicleInfo:   strings.TrimSpace(in.VehicleInfo),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
	}
	if u.Email == "" || u.Name == "" {
		return domain.User{}, apperr.New(apperr.ErrInvalid, "Missing required fields")
	}
	if password == "" {
		password = s.defaultPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = hash

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return domain.User{}, apperr.New(apperr.ErrConflict, "User already exists")
		}
		return domain.User{}, err
	}

	s.logger.Info("driver created", logx.Int64("driver_id", u.ID))
	return u, nil
}

func normalizeUpdate(u *domain.PartialDriverUpdate) error {
	if u.ID <= 0 {
		return apperr.New(apperr.ErrInvalid, "Driver ID is required")
	}
	if u.Empty() {
		return apperr.New(apperr.ErrInvalid, "No fields to update")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return apperr.New(apperr.ErrInvalid, "name must not be empty")
		}
		u.Name = &name
	}
	if u.Email != nil {
		email := domain.NormalizeEmail(*u.Email)
		if email == "" {
			return apperr.New(apperr.ErrInvalid, "email must not be empty")
		}
		u.Email = &email
	}
	return nil
}

// Update applies a partial update. Admins may update any driver, drivers only themselves.
func (s *Service) Update(ctx context.Context, sess domain.Session, u domain.PartialDriverUpdate) (domain.User, error) {
	if !sess.IsAdmin() && sess.UserID != u.ID {
		return domain.User{}, apperr.New(apperr.ErrForbidden, "Access denied")
	}
	if err := normalizeUpdate(&u); err != nil {
		return domain.User{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	got, err := s.repo.UpdateDriver(ctx, u)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return domain.User{}, apperr.New(apperr.ErrConflict, "Email already in use")
		}
		return domain.User{}, err
	}
	if got == nil {
		return domain.User{}, errDriverNotFound()
	}

	if u.IsAvailable != nil {
		s.logger.Info("driver availability changed",
			logx.Int64("driver_id", got.ID),
			logx.Bool("is_available", got.IsAvailable),
		)
	}
	return *got, nil
}

// Delete removes a driver account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.New(apperr.ErrInvalid, "Driver ID is required")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.DeleteDriver(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errDriverNotFound()
	}
	s.logger.Info("driver deleted", logx.Int64("driver_id", id))
	return nil
}
