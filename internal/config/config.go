package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/papermint/fulfillment/internal/domain"
)

// Config holds all application configuration values.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers    []string
	KafkaAuditTopic string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// Fulfillment policy
	AllowedEventTypes      []string
	RequireClientReference bool
	AssetMetadataKey       string
	DownloadLinkTemplate   string
	ClaimTTL               time.Duration
	RecordTTL              time.Duration

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromAddress  string
	FromName     string

	// Relay
	RelayAPIKey        string
	RelayRatePerMinute int

	// Worker
	PollInterval time.Duration
	BatchSize    int

	// Application
	Environment string
	LogLevel    string
}

// New creates a Config populated from environment variables with sensible defaults.
func New() *Config {
	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaAuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "fulfillment.audit"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		AllowedEventTypes: strings.Split(
			getEnv("ALLOWED_EVENT_TYPES", "checkout.session.completed,checkout.session.async_payment_succeeded"),
			",",
		),
		RequireClientReference: getEnvBool("REQUIRE_CLIENT_REFERENCE", false),
		AssetMetadataKey:       getEnv("ASSET_METADATA_KEY", domain.DefaultAssetMetadataKey),
		DownloadLinkTemplate:   getEnv("DOWNLOAD_LINK_TEMPLATE", domain.DefaultLinkTemplate),
		ClaimTTL:               getEnvDuration("CLAIM_TTL", domain.DefaultClaimTTL),
		RecordTTL:              getEnvDuration("RECORD_TTL", domain.DefaultRecordTTL),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromName:     getEnv("MAIL_FROM_NAME", "Your Store"),

		RelayAPIKey:        getEnv("RELAY_API_KEY", ""),
		RelayRatePerMinute: getEnvInt("RELAY_RATE_PER_MINUTE", 30),

		PollInterval: getEnvDuration("POLL_INTERVAL", domain.DefaultPollInterval),
		BatchSize:    getEnvInt("BATCH_SIZE", domain.DefaultBatchSize),

		Environment: getEnv("ENVIRONMENT", "local"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	cfg.FromAddress = getEnv("MAIL_FROM", cfg.SMTPUser)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
