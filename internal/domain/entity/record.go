package entity

// RecordState is the lifecycle state of a persisted fulfillment record.
// Unseen sessions have no record; in_progress and failed are claimable,
// fulfilled is terminal.
type RecordState string

const (
	RecordStateInProgress RecordState = "in_progress"
	RecordStateFulfilled  RecordState = "fulfilled"
	RecordStateFailed     RecordState = "failed"
)

// FulfillmentRecord is the persisted per-session fulfillment state.
type FulfillmentRecord struct {
	SessionID string
	State     RecordState
	Reason    string
}
