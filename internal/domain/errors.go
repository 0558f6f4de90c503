package domain

import "errors"

var (
	// ErrBadSignature indicates the webhook payload failed signature verification.
	ErrBadSignature = errors.New("webhook signature verification failed")

	// ErrTransient indicates a dependency failure that is expected to succeed
	// on a later attempt (provider API, redis, SMTP infrastructure).
	ErrTransient = errors.New("transient dependency failure")

	// ErrInvalidMessage indicates a relay message failed validation.
	ErrInvalidMessage = errors.New("invalid relay message")
)
