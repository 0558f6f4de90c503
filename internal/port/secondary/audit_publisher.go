package secondary

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
)

// AuditPublisher defines the secondary port for publishing fulfillment run
// records to an external audit stream (e.g., Kafka).
type AuditPublisher interface {
	// Publish sends one audit entry.
	Publish(ctx context.Context, entry *entity.AuditEntry) error

	// Close releases any resources held by the publisher.
	Close() error
}
