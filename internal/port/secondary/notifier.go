package secondary

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
)

// Notifier defines the secondary port for delivering one outbound message
// (e.g., SMTP).
type Notifier interface {
	// Send attempts delivery and returns a delivery identifier on success.
	Send(ctx context.Context, msg *entity.Notification) (string, error)
}
