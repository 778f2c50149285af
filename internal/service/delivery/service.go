package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/ports/deliverytx"
)

// Service runs the order assignment and delivery lifecycle workflow.
type Service struct {
	repo             deliveryRepository
	events           EventPublisher
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewDeliveryService - creates a new delivery Service. A nil publisher drops events.
func NewDeliveryService(r deliveryRepository, events EventPublisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		events:           events,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

// Assign binds a driver to a pending order and creates its delivery.
func (s *Service) Assign(ctx context.Context, orderID, driverID int64) (domain.AssignResult, error) {
	if orderID <= 0 || driverID <= 0 {
		return domain.AssignResult{}, apperr.New(apperr.ErrInvalid, "Order ID and Driver ID are required")
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.AssignResult
	err := s.repo.WithTx(tctx, func(tx deliverytx.Repository) error {
		driver, err := tx.GetDriverForShare(tctx, driverID)
		if err != nil {
			return err
		}
		if driver == nil {
			return apperr.New(apperr.ErrNotFound, "driver not found")
		}
		if !driver.IsDriver() || !driver.IsAvailable {
			return apperr.New(apperr.ErrInvalid, "driver is not available")
		}

		order, err := tx.GetOrder(tctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.New(apperr.ErrNotFound, "order not found")
		}
		if order.Status != domain.OrderPending {
			return apperr.New(apperr.ErrInvalid, "order is not available for assignment")
		}

		assigned, err := tx.AssignOrder(tctx, orderID, driverID)
		if err != nil {
			return err
		}
		if assigned == nil {
			return apperr.New(apperr.ErrConflict, "order was assigned concurrently")
		}

		d := domain.NewDelivery(orderID, driverID)
		if err := tx.InsertDelivery(tctx, &d); err != nil {
			return err
		}

		result = domain.AssignResult{Order: *assigned, Delivery: d}
		return nil
	})
	if err != nil {
		return domain.AssignResult{}, err
	}

	s.logger.Info("driver assigned",
		logx.String("event", string(domain.EventOrderAssigned)),
		logx.Int64("order_id", orderID),
		logx.Int64("driver_id", driverID),
		logx.Int64("delivery_id", result.Delivery.ID),
	)
	s.publish(ctx, domain.EventOrderAssigned, result.Delivery)

	return result, nil
}

// List returns deliveries matching f. Drivers get each delivery's order embedded.
func (s *Service) List(ctx context.Context, sess domain.Session, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.New(apperr.ErrInvalid, "invalid status filter")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if sess.Role == domain.RoleDriver {
		return s.repo.ListWithOrders(ctx, f)
	}

	list, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DeliveryWithOrder, 0, len(list))
	for _, d := range list {
		out = append(out, domain.DeliveryWithOrder{Delivery: d})
	}
	return out, nil
}

// UpdateStatus moves the caller's delivery one step along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, sess domain.Session, upd domain.StatusUpdate) (domain.Delivery, error) {
	if sess.Role != domain.RoleDriver {
		return domain.Delivery{}, apperr.New(apperr.ErrForbidden, "Driver access required")
	}
	if upd.DeliveryID <= 0 {
		return domain.Delivery{}, apperr.New(apperr.ErrInvalid, "invalid delivery id")
	}
	if upd.Status == "" {
		return domain.Delivery{}, apperr.New(apperr.ErrInvalid, "Status is required")
	}
	if !upd.Status.Valid() {
		return domain.Delivery{}, apperr.New(apperr.ErrInvalid, "invalid status")
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		updated domain.Delivery
		from    domain.DeliveryStatus
	)
	err := s.repo.WithTx(tctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(tctx, upd.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.New(apperr.ErrNotFound, "delivery not found")
		}
		if !sess.Owns(d.DriverID) {
			return apperr.New(apperr.ErrForbidden, "You can only update your own deliveries")
		}

		from = d.Status
		cascade, err := d.Advance(upd.Status, upd.Notes, s.now())
		if err != nil {
			return apperr.New(apperr.ErrInvalid, err.Error())
		}
		if err := tx.UpdateDelivery(tctx, d); err != nil {
			return err
		}
		if cascade {
			if err := tx.MarkOrderDelivered(tctx, d.OrderID); err != nil {
				return err
			}
		}

		updated = *d
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery status changed",
		logx.String("event", string(domain.EventDeliveryStatusChanged)),
		logx.Int64("delivery_id", updated.ID),
		logx.Int64("order_id", updated.OrderID),
		logx.String("from", string(from)),
		logx.String("to", string(updated.Status)),
	)
	s.publish(ctx, domain.EventDeliveryStatusChanged, updated)

	return updated, nil
}

// publish is best effort: the change is already committed.
func (s *Service) publish(ctx context.Context, typ domain.EventType, d domain.Delivery) {
	e := domain.Event{
		ID:         s.newID(),
		Type:       typ,
		OrderID:    d.OrderID,
		DeliveryID: d.ID,
		DriverID:   d.DriverID,
		Status:     string(d.Status),
		OccurredAt: s.now(),
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("publish event failed",
			logx.String("event_type", string(typ)),
			logx.Int64("order_id", d.OrderID),
			logx.Err(err),
		)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }
