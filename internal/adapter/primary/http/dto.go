package http

import "github.com/papermint/fulfillment/internal/domain/entity"

// WebhookResponse is the payload returned to the payment provider. A 2xx
// status with this body tells the provider not to redeliver.
type WebhookResponse struct {
	Received  bool   `json:"received"`
	Fulfilled bool   `json:"fulfilled"`
	Reason    string `json:"reason,omitempty"`
}

// SendRequest is the relay message payload.
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// toEntity converts a SendRequest DTO to a domain notification.
func (r *SendRequest) toEntity() *entity.Notification {
	return &entity.Notification{
		Recipient: r.To,
		Subject:   r.Subject,
		TextBody:  r.Text,
		HTMLBody:  r.HTML,
	}
}

// SendResponse is returned on successful relay delivery.
type SendResponse struct {
	OK        bool   `json:"ok"`
	MessageID string `json:"message_id"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
