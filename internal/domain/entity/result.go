package entity

// FailureReason classifies a per-item fulfillment failure.
type FailureReason string

const (
	// FailureReasonMissingAsset marks an item whose product has no digital
	// asset identifier. Permanent: a retry cannot produce one.
	FailureReasonMissingAsset FailureReason = "missing_asset"

	// FailureReasonDeliveryFailed marks a notification delivery failure.
	// Transient: a provider redelivery may succeed.
	FailureReasonDeliveryFailed FailureReason = "delivery_failed"
)

// ItemFailure records one item that was not fulfilled during a run.
type ItemFailure struct {
	ProductName string        `json:"product_name"`
	Reason      FailureReason `json:"reason"`
	Detail      string        `json:"detail,omitempty"`
}

// Transient reports whether a redelivery could resolve this failure.
func (f ItemFailure) Transient() bool {
	return f.Reason == FailureReasonDeliveryFailed
}

// FulfillmentResult aggregates the per-item outcomes of a single run.
type FulfillmentResult struct {
	Attempted int
	Succeeded int
	Failures  []ItemFailure
}

// HasTransientFailure reports whether any item failed in a retryable way.
// When true the session record must not reach the fulfilled state.
func (r *FulfillmentResult) HasTransientFailure() bool {
	for _, f := range r.Failures {
		if f.Transient() {
			return true
		}
	}
	return false
}
