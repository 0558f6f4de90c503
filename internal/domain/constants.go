package domain

import "time"

const (
	// RedisStateKeyPrefix prefixes the per-session fulfillment record keys.
	RedisStateKeyPrefix = "fulfillment:state:"

	// DefaultClaimTTL is the lease on an in-progress claim. A crashed run
	// releases its session once the lease expires.
	DefaultClaimTTL = 10 * time.Minute

	// DefaultRecordTTL bounds how long terminal records are kept.
	DefaultRecordTTL = 30 * 24 * time.Hour

	// DefaultPollInterval is the interval between failed-record report cycles.
	DefaultPollInterval = 1 * time.Minute

	// DefaultBatchSize is the maximum number of failed records reported per cycle.
	DefaultBatchSize = 50

	// DefaultAssetMetadataKey is the product metadata key carrying the
	// digital asset identifier.
	DefaultAssetMetadataKey = "pdf_id"

	// DefaultLinkTemplate builds the purchaser-facing download link from an
	// asset identifier.
	DefaultLinkTemplate = "https://drive.google.com/file/d/%s/view"

	// MaxWebhookBodyBytes caps the accepted webhook payload size.
	MaxWebhookBodyBytes = 1 << 20
)
