package valueobject

import (
	"fmt"
	"strings"
)

// FulfillmentKey is an immutable value object identifying one fulfillment
// record. It is derived from the checkout session identifier.
type FulfillmentKey struct {
	value string
}

// NewFulfillmentKey creates a validated FulfillmentKey from a string.
func NewFulfillmentKey(value string) (FulfillmentKey, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return FulfillmentKey{}, fmt.Errorf("fulfillment key must not be empty")
	}
	return FulfillmentKey{value: trimmed}, nil
}

// String returns the string representation of the FulfillmentKey.
func (k FulfillmentKey) String() string {
	return k.value
}

// Equals checks equality with another FulfillmentKey.
func (k FulfillmentKey) Equals(other FulfillmentKey) bool {
	return k.value == other.value
}
