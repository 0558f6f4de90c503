package entity

// EventType identifies a provider event eligible for fulfillment.
type EventType string

const (
	EventTypeCompleted             EventType = "checkout.session.completed"
	EventTypeAsyncPaymentSucceeded EventType = "checkout.session.async_payment_succeeded"
)

// PaymentStatus is the provider-reported payment state of a checkout session.
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
	PaymentStatusNoPayment PaymentStatus = "no_payment_required"
)

// ProviderEvent is a verified provider envelope, prior to classification.
// It carries only the fields the engine extracts from the raw event.
type ProviderEvent struct {
	ID      string
	Type    string
	Session CheckoutSession
}

// CheckoutSession holds the session fields relevant to fulfillment.
// DetailsEmail/DetailsName come from the detailed customer object;
// CustomerEmail is the legacy top-level field used as a fallback.
type CheckoutSession struct {
	ID                string
	PaymentStatus     string
	ClientReferenceID string
	CustomerEmail     string
	DetailsEmail      string
	DetailsName       string
}

// PurchasedItem is one line item of a checkout session with its product
// details resolved.
type PurchasedItem struct {
	ProductName    string
	DigitalAssetID string
}

// Fulfillable reports whether the item carries a digital asset to deliver.
func (i PurchasedItem) Fulfillable() bool {
	return i.DigitalAssetID != ""
}

// FulfillmentEvent is a verified, classified payment event. It is not
// mutated after construction; Items hold the provider's ordering.
type FulfillmentEvent struct {
	EventID       string
	SessionID     string
	Type          EventType
	PaymentStatus PaymentStatus
	CustomerEmail string
	CustomerName  string
	Items         []PurchasedItem
}

// Paid reports whether payment completed. Notification is only attempted
// for paid sessions.
func (e *FulfillmentEvent) Paid() bool {
	return e.PaymentStatus == PaymentStatusPaid
}

// HasEmail reports whether a recipient address is known for the purchaser.
func (e *FulfillmentEvent) HasEmail() bool {
	return e.CustomerEmail != ""
}
