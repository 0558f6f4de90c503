package secondary

import (
	"github.com/papermint/fulfillment/internal/domain/entity"
)

// EventVerifier defines the secondary port for webhook authenticity.
// Implementations check the payload against the signature header using the
// shared provider secret and return the decoded envelope.
type EventVerifier interface {
	// Verify returns the provider event carried by payload, or an error if
	// the signature is missing, invalid, or the payload cannot be decoded.
	Verify(payload []byte, signature string) (*entity.ProviderEvent, error)
}
