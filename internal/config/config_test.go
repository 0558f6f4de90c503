package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected RedisAddr localhost:6379, got %s", cfg.RedisAddr)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("expected KafkaBrokers [localhost:9092], got %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaAuditTopic != "fulfillment.audit" {
		t.Errorf("expected KafkaAuditTopic fulfillment.audit, got %s", cfg.KafkaAuditTopic)
	}
	if len(cfg.AllowedEventTypes) != 2 {
		t.Errorf("expected 2 allowed event types, got %v", cfg.AllowedEventTypes)
	}
	if cfg.AssetMetadataKey != "pdf_id" {
		t.Errorf("expected AssetMetadataKey pdf_id, got %s", cfg.AssetMetadataKey)
	}
	if cfg.ClaimTTL != 10*time.Minute {
		t.Errorf("expected ClaimTTL 10m, got %s", cfg.ClaimTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected SMTPPort 587, got %d", cfg.SMTPPort)
	}
	if cfg.RelayRatePerMinute != 30 {
		t.Errorf("expected RelayRatePerMinute 30, got %d", cfg.RelayRatePerMinute)
	}
	if cfg.PollInterval != time.Minute {
		t.Errorf("expected PollInterval 1m, got %s", cfg.PollInterval)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("expected BatchSize 50, got %d", cfg.BatchSize)
	}
	if cfg.Environment != "local" {
		t.Errorf("expected Environment local, got %s", cfg.Environment)
	}
	if cfg.RequireClientReference {
		t.Error("expected RequireClientReference to default to false")
	}
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("ALLOWED_EVENT_TYPES", "checkout.session.completed")
	t.Setenv("REQUIRE_CLIENT_REFERENCE", "true")
	t.Setenv("CLAIM_TTL", "5m")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("RELAY_RATE_PER_MINUTE", "60")
	t.Setenv("POLL_INTERVAL", "30s")

	cfg := New()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected HTTPAddr :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "redis.internal:6380" {
		t.Errorf("expected RedisAddr redis.internal:6380, got %s", cfg.RedisAddr)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Errorf("expected 2 kafka brokers, got %v", cfg.KafkaBrokers)
	}
	if len(cfg.AllowedEventTypes) != 1 {
		t.Errorf("expected 1 allowed event type, got %v", cfg.AllowedEventTypes)
	}
	if !cfg.RequireClientReference {
		t.Error("expected RequireClientReference to be true")
	}
	if cfg.ClaimTTL != 5*time.Minute {
		t.Errorf("expected ClaimTTL 5m, got %s", cfg.ClaimTTL)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("expected SMTPPort 2525, got %d", cfg.SMTPPort)
	}
	if cfg.RelayRatePerMinute != 60 {
		t.Errorf("expected RelayRatePerMinute 60, got %d", cfg.RelayRatePerMinute)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("expected PollInterval 30s, got %s", cfg.PollInterval)
	}
}

func TestNew_FromAddressFallsBackToSMTPUser(t *testing.T) {
	t.Setenv("SMTP_USER", "store@example.com")

	cfg := New()
	if cfg.FromAddress != "store@example.com" {
		t.Errorf("expected FromAddress store@example.com, got %s", cfg.FromAddress)
	}

	t.Setenv("MAIL_FROM", "noreply@example.com")

	cfg = New()
	if cfg.FromAddress != "noreply@example.com" {
		t.Errorf("expected FromAddress noreply@example.com, got %s", cfg.FromAddress)
	}
}

func TestGetEnvInt_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := New()
	if cfg.SMTPPort != 587 {
		t.Errorf("expected invalid SMTP_PORT to fall back to 587, got %d", cfg.SMTPPort)
	}
}
