package kafkaaudit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// Publisher implements secondary.AuditPublisher using segmentio/kafka-go.
// It maintains a single writer connection for all audit records.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher creates a Kafka audit publisher from the application configuration.
func NewPublisher(cfg *config.Config, logger *zap.Logger) secondary.AuditPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("kafka audit publisher initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaAuditTopic),
	)

	return &Publisher{
		writer: writer,
		logger: logger.Named("kafka-audit"),
	}
}

// Publish sends one audit entry keyed by session so redeliveries of the same
// session land on the same partition.
func (p *Publisher) Publish(ctx context.Context, entry *entity.AuditEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling audit entry: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(entry.SessionID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing audit entry to kafka: %w", err)
	}

	p.logger.Debug("audit entry published",
		zap.String("session_id", entry.SessionID),
		zap.String("status", entry.Status),
	)

	return nil
}

// Close shuts down the Kafka writer and releases its resources.
func (p *Publisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
