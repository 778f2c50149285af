package intake

import (
	"context"
	"errors"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/logx"
)

// Processor applies intake events to the order workflow.
type Processor struct {
	orders   OrderCreator
	assigner Assigner
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new intake Processor.
func NewProcessor(orders OrderCreator, assigner Assigner, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{orders: orders, assigner: assigner, logger: logger}
	p.factory = newActionFactory(p.onCreated, p.onAssign)
	return p
}

// Handle processes a single Event. Unknown types are ignored.
// Business rejections are logged and acknowledged; only infrastructure errors are returned.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("intake event ignored", logx.String("type", e.Type))
		return nil
	}
	err := fn(ctx, e)
	if isRejection(err) {
		p.logger.Warn("intake event rejected",
			logx.String("type", e.Type),
			logx.Int64("order_id", e.OrderID),
			logx.Err(err),
		)
		return nil
	}
	return err
}

func isRejection(err error) bool {
	return errors.Is(err, apperr.ErrConflict) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrInvalid)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	o, err := p.orders.Create(ctx, e.Order)
	if err != nil {
		return err
	}
	p.logger.Info("intake order created", logx.Int64("order_id", o.ID))
	return nil
}

func (p *Processor) onAssign(ctx context.Context, e Event) error {
	_, err := p.assigner.Assign(ctx, e.OrderID, e.DriverID)
	return err
}
