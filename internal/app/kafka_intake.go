package app

import (
	"context"
	"time"

	"delivery-manager/internal/service/intake"
	"delivery-manager/internal/transport/kafka"
)

type intakeHandler interface {
	Handle(ctx context.Context, e intake.Event) error
}

// makeIntakeKafka bounds each message with its own deadline so one stuck
// event cannot hold the partition forever.
func makeIntakeKafka(h intakeHandler, timeout time.Duration) kafka.HandleFunc {
	return func(ctx context.Context, e intake.Event) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return h.Handle(ctx, e)
	}
}
