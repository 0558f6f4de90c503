package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/port/primary"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// NewRouter creates an HTTP mux with all application routes registered.
func NewRouter(
	service primary.FulfillmentService,
	healthChecks []secondary.HealthChecker,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Provider webhook endpoint
	mux.Handle("/webhooks/stripe", NewWebhookHandler(service, logger))

	// Authenticated relay endpoint, rate limited per IP
	limiter := NewRateLimiter(cfg.RelayRatePerMinute)
	mux.Handle("/send", limiter.Middleware(NewSendHandler(service, cfg.RelayAPIKey, logger)))

	// Health check endpoint
	mux.Handle("/health", NewHealthHandler(healthChecks))

	return mux
}
