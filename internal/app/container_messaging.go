package app

import (
	"go.uber.org/dig"

	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/service/delivery"
	"delivery-manager/internal/transport/kafka"
)

var newPublisher = kafka.NewPublisher

func registerPublisher(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger) (*kafka.Publisher, error) {
			p, err := newPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
			if err != nil {
				return nil, err
			}
			if p == nil {
				logger.Info("kafka publisher disabled")
			}
			return p, nil
		},
		// nil *Publisher молча отбрасывает события
		func(p *kafka.Publisher) delivery.EventPublisher { return p },
	)
}
