package secondary

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
)

// SessionResolver defines the secondary port for resolving a checkout
// session's line items with product details expanded. Items without a
// digital asset are returned as-is, not dropped.
type SessionResolver interface {
	// ResolveItems returns the session's purchased items in provider order.
	ResolveItems(ctx context.Context, sessionID string) ([]entity.PurchasedItem, error)
}
