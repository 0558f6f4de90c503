package primary

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
)

// FulfillmentService defines the primary port exposed to driving adapters
// (HTTP handlers, the background worker).
type FulfillmentService interface {
	// HandleWebhook verifies, classifies, and fulfills one provider webhook
	// delivery. Per-item failures are reported inside the outcome; only
	// authenticity and infrastructure errors are returned as errors.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*entity.Outcome, error)

	// Relay validates and delivers one message through the notifier on
	// behalf of an authenticated caller.
	Relay(ctx context.Context, msg *entity.Notification) (string, error)

	// ReportFailedSessions logs sessions whose records are in the failed
	// state so they can be followed up manually.
	ReportFailedSessions(ctx context.Context) error
}
