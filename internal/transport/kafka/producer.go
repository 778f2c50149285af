package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Publisher sends workflow events to a Kafka topic
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewPublisher creates a Publisher. It returns nil, nil when Kafka is not configured;
// a nil *Publisher drops events.
func NewPublisher(logger logx.Logger, brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newPublisher(p, topic, logger), nil
}

func newPublisher(p sarama.SyncProducer, topic string, logger logx.Logger) *Publisher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Publisher{producer: p, topic: topic, logger: logger}
}

// Publish sends e keyed by its order id
func (p *Publisher) Publish(ctx context.Context, e domain.Event) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(EventMessage{
		ID:         e.ID,
		Type:       string(e.Type),
		OrderID:    e.OrderID,
		DeliveryID: e.DeliveryID,
		DriverID:   e.DriverID,
		Status:     e.Status,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send event %s: %w", e.Type, err)
	}

	p.logger.Debug("event published",
		logx.String("type", string(e.Type)),
		logx.Int64("order_id", e.OrderID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the producer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
