package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/domain"
	"github.com/papermint/fulfillment/internal/port/primary"
)

// SendHandler handles POST /send requests: a bearer-token-authenticated
// relay straight through the notifier.
type SendHandler struct {
	service primary.FulfillmentService
	apiKey  string
	logger  *zap.Logger
}

// NewSendHandler creates a handler for relay messages.
func NewSendHandler(service primary.FulfillmentService, apiKey string, logger *zap.Logger) *SendHandler {
	return &SendHandler{
		service: service,
		apiKey:  apiKey,
		logger:  logger.Named("send-handler"),
	}
}

// ServeHTTP processes one relay request.
func (h *SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed",
			Code:  "METHOD_NOT_ALLOWED",
		})
		return
	}

	if !h.authorized(r) {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
		return
	}

	messageID, err := h.service.Relay(r.Context(), req.toEntity())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMessage) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION_ERROR",
			})
			return
		}
		h.logger.Error("relay delivery failed", zap.Error(err))
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: "email send error",
			Code:  "SEND_ERROR",
		})
		return
	}

	respondJSON(w, http.StatusOK, SendResponse{
		OK:        true,
		MessageID: messageID,
	})
}

func (h *SendHandler) authorized(r *http.Request) bool {
	if h.apiKey == "" {
		return false
	}

	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(h.apiKey)) == 1
}
