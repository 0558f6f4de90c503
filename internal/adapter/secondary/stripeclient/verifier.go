package stripeclient

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// Verifier implements secondary.EventVerifier using Stripe webhook signatures.
type Verifier struct {
	secret string
	logger *zap.Logger
}

// NewVerifier creates a signature verifier from the application configuration.
func NewVerifier(cfg *config.Config, logger *zap.Logger) secondary.EventVerifier {
	return &Verifier{
		secret: cfg.StripeWebhookSecret,
		logger: logger.Named("stripe-verifier"),
	}
}

// Verify checks the payload against the Stripe-Signature header and decodes
// the checkout session carried by the event.
func (v *Verifier) Verify(payload []byte, signature string) (*entity.ProviderEvent, error) {
	// Event payloads are pinned to the account's API version, which need
	// not match the SDK's pinned version.
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("constructing event: %w", err)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("decoding event object: %w", err)
	}

	providerEvent := &entity.ProviderEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Session: entity.CheckoutSession{
			ID:                session.ID,
			PaymentStatus:     string(session.PaymentStatus),
			ClientReferenceID: session.ClientReferenceID,
			CustomerEmail:     session.CustomerEmail,
		},
	}
	if session.CustomerDetails != nil {
		providerEvent.Session.DetailsEmail = session.CustomerDetails.Email
		providerEvent.Session.DetailsName = session.CustomerDetails.Name
	}

	v.logger.Debug("event verified",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)

	return providerEvent, nil
}
