package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/service/delivery"
	"delivery-manager/internal/service/intake"
	"delivery-manager/internal/service/order"
	"delivery-manager/internal/transport/kafka"
)

var newConsumer = kafka.NewConsumer

// MustBuildWorkerContainer builds the intake worker container or exits
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	c, err := buildWorkerContainer(ctx, openDatabase)
	if err != nil {
		log.Fatalf("failed to build worker container: %v", err)
	}
	return c
}

func buildWorkerContainer(ctx context.Context, dbConnect dbConnectFunc) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerPublisher(container); err != nil {
		return nil, fmt.Errorf("messaging: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerIntake(container); err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	return container, nil
}

func registerIntake(container *dig.Container) error {
	return provideAll(container,
		func(orders *order.Service, deliveries *delivery.Service, logger logx.Logger) *intake.Processor {
			return intake.NewProcessor(orders, deliveries, logger)
		},
		func(cfg *config.Config, logger logx.Logger, p *intake.Processor, t operationTimeout) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return newConsumer(logger, k.Brokers, k.GroupID, k.IntakeTopic, makeIntakeKafka(p, 3*time.Duration(t)))
		},
	)
}
