package entity

// OutcomeStatus is the final disposition of one webhook delivery.
type OutcomeStatus string

const (
	// OutcomeFulfilled means every fulfillable item was notified and the
	// session record reached the fulfilled state.
	OutcomeFulfilled OutcomeStatus = "fulfilled"

	// OutcomeAlreadyFulfilled means the session was fulfilled by an earlier
	// delivery; this run performed no notification.
	OutcomeAlreadyFulfilled OutcomeStatus = "already_fulfilled"

	// OutcomeInProgress means another run currently holds the session claim.
	OutcomeInProgress OutcomeStatus = "in_progress"

	// OutcomeIgnored means the event is not eligible for fulfillment
	// (type outside the allow-set, unpaid session, unexpected flow).
	OutcomeIgnored OutcomeStatus = "ignored"

	// OutcomeNoEmail means the session carries no purchaser address.
	// Acknowledged without retry; a redelivery cannot change it.
	OutcomeNoEmail OutcomeStatus = "no_email"

	// OutcomeIncomplete means at least one delivery failed transiently; the
	// record was left non-terminal so a redelivery resumes the session.
	OutcomeIncomplete OutcomeStatus = "incomplete"
)

// Outcome is what a fulfillment run reports back to the webhook boundary.
type Outcome struct {
	Status OutcomeStatus
	Reason string
	Result *FulfillmentResult
}

// Ignored builds an acknowledge-and-ignore outcome with the given reason.
func Ignored(reason string) *Outcome {
	return &Outcome{Status: OutcomeIgnored, Reason: reason}
}

// Fulfilled reports whether the session is in the fulfilled state from the
// caller's perspective, including idempotent redeliveries.
func (o *Outcome) Fulfilled() bool {
	return o.Status == OutcomeFulfilled || o.Status == OutcomeAlreadyFulfilled
}
