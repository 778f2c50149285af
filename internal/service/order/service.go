package order

import (
	"context"
	"time"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// Service coordinates order business logic.
type Service struct {
	repo             orderRepository
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an order Service.
func NewService(r orderRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(o domain.Order) error {
	if o.CustomerName == "" || o.CustomerAddress == "" || o.CustomerPhone == "" || o.ProductInfo == "" {
		return apperr.New(apperr.ErrInvalid, "All fields are required")
	}
	if o.OrderValue <= 0 {
		return apperr.New(apperr.ErrInvalid, "orderValue must be greater than 0")
	}
	return nil
}

// Create stores a new pending order built from the customer fields of in.
func (s *Service) Create(ctx context.Context, in domain.Order) (domain.Order, error) {
	o := domain.NewOrder(in.CustomerName, in.CustomerAddress, in.CustomerPhone, in.ProductInfo, in.OrderValue)
	if err := validateCreate(o); err != nil {
		return domain.Order{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, &o); err != nil {
		return domain.Order{}, err
	}

	s.logger.Info("order created",
		logx.Int64("order_id", o.ID),
		logx.Float64("order_value", o.OrderValue),
	)
	return o, nil
}

// List returns orders matching f.
func (s *Service) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.New(apperr.ErrInvalid, "invalid status filter")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}
