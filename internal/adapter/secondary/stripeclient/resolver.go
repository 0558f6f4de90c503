package stripeclient

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// Resolver implements secondary.SessionResolver against the Stripe API.
// It maintains a single API client for all lookups.
type Resolver struct {
	api      *client.API
	assetKey string
	logger   *zap.Logger
}

// NewResolver creates a line-item resolver from the application configuration.
func NewResolver(cfg *config.Config, logger *zap.Logger) secondary.SessionResolver {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)

	return &Resolver{
		api:      api,
		assetKey: cfg.AssetMetadataKey,
		logger:   logger.Named("stripe-resolver"),
	}
}

// ResolveItems lists the session's line items with product details expanded
// in the same round trip. Items whose product carries no asset id are
// returned unflagged; the engine records them instead of dropping them.
func (r *Resolver) ResolveItems(ctx context.Context, sessionID string) ([]entity.PurchasedItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.AddExpand("data.price.product")

	var items []entity.PurchasedItem

	iter := r.api.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		items = append(items, r.toItem(iter.LineItem()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("listing line items for session %q: %w", sessionID, err)
	}

	r.logger.Debug("line items resolved",
		zap.String("session_id", sessionID),
		zap.Int("count", len(items)),
	)

	return items, nil
}

func (r *Resolver) toItem(li *stripe.LineItem) entity.PurchasedItem {
	item := entity.PurchasedItem{ProductName: li.Description}

	if li.Price != nil && li.Price.Product != nil {
		product := li.Price.Product
		if product.Name != "" {
			item.ProductName = product.Name
		}
		item.DigitalAssetID = product.Metadata[r.assetKey]
	}

	return item
}
