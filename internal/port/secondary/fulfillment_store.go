package secondary

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/domain/valueobject"
)

// ClaimResult is the answer of the atomic check-and-set on a fulfillment record.
type ClaimResult string

const (
	// ClaimBegun means this run now owns the session and must finish with a
	// terminal-state write.
	ClaimBegun ClaimResult = "begun"

	// ClaimAlreadyFulfilled means an earlier run completed the session.
	ClaimAlreadyFulfilled ClaimResult = "already_fulfilled"

	// ClaimAlreadyInProgress means another run currently holds the claim.
	ClaimAlreadyInProgress ClaimResult = "already_in_progress"
)

// FulfillmentStore defines the secondary port for the idempotency records.
// TryBegin must be a single atomic operation against the store: concurrent
// deliveries of the same session must not both observe ClaimBegun.
type FulfillmentStore interface {
	// TryBegin claims the record for this run, creating it in the
	// in_progress state. Records in the failed state are claimable again.
	TryBegin(ctx context.Context, key valueobject.FulfillmentKey) (ClaimResult, error)

	// MarkFulfilled writes the terminal fulfilled state.
	MarkFulfilled(ctx context.Context, key valueobject.FulfillmentKey) error

	// MarkFailed writes a non-terminal failed state with a reason, leaving
	// the record claimable by a later redelivery.
	MarkFailed(ctx context.Context, key valueobject.FulfillmentKey, reason string) error

	// ListFailed returns up to limit records currently in the failed state.
	ListFailed(ctx context.Context, limit int) ([]entity.FulfillmentRecord, error)
}
