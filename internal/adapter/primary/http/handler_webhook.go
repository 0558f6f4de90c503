package http

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/domain"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/port/primary"
)

// WebhookHandler handles POST /webhooks/stripe requests. The status code
// decides provider behavior: any 2xx stops redelivery, anything else
// triggers it.
type WebhookHandler struct {
	service primary.FulfillmentService
	logger  *zap.Logger
}

// NewWebhookHandler creates a handler for provider webhook deliveries.
func NewWebhookHandler(service primary.FulfillmentService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.Named("webhook-handler"),
	}
}

// ServeHTTP processes one webhook delivery.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed",
			Code:  "METHOD_NOT_ALLOWED",
		})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, domain.MaxWebhookBodyBytes))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, WebhookResponse{
			Received: false,
			Reason:   "unreadable_body",
		})
		return
	}

	outcome, err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBadSignature):
			h.logger.Warn("webhook signature rejected", zap.Error(err))
			respondJSON(w, http.StatusBadRequest, WebhookResponse{
				Received: false,
				Reason:   "bad_signature",
			})
		case errors.Is(err, domain.ErrTransient):
			// Non-2xx so the provider redelivers; the idempotency record
			// was left claimable.
			h.logger.Error("transient failure during fulfillment", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, WebhookResponse{
				Received: false,
				Reason:   "transient_failure",
			})
		default:
			h.logger.Error("fulfillment failed", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, WebhookResponse{
				Received: false,
				Reason:   "internal_error",
			})
		}
		return
	}

	switch outcome.Status {
	case entity.OutcomeFulfilled, entity.OutcomeAlreadyFulfilled:
		respondJSON(w, http.StatusOK, WebhookResponse{
			Received:  true,
			Fulfilled: true,
		})
	case entity.OutcomeIncomplete:
		// Some deliveries failed transiently; ask the provider to redeliver.
		respondJSON(w, http.StatusBadGateway, WebhookResponse{
			Received: true,
			Reason:   outcome.Reason,
		})
	default:
		respondJSON(w, http.StatusOK, WebhookResponse{
			Received: true,
			Reason:   outcome.Reason,
		})
	}
}
