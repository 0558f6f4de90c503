package main

import (
	"context"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	httphandler "github.com/papermint/fulfillment/internal/adapter/primary/http"
	"github.com/papermint/fulfillment/internal/adapter/primary/worker"
	"github.com/papermint/fulfillment/internal/adapter/secondary/kafkaaudit"
	"github.com/papermint/fulfillment/internal/adapter/secondary/redisstore"
	"github.com/papermint/fulfillment/internal/adapter/secondary/smtpnotifier"
	"github.com/papermint/fulfillment/internal/adapter/secondary/stripeclient"
	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/domain/service"
	"github.com/papermint/fulfillment/internal/port/primary"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

func buildContainer(ctx context.Context) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(config.New); err != nil {
		return nil, err
	}

	// --- Logger ---
	if err := c.Provide(newLogger); err != nil {
		return nil, err
	}

	// --- Secondary Adapters (infrastructure) ---

	// Redis client
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (*goredis.Client, error) {
		return redisstore.NewClient(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Fulfillment record store (implements secondary.FulfillmentStore)
	if err := c.Provide(func(client *goredis.Client, cfg *config.Config, logger *zap.Logger) secondary.FulfillmentStore {
		return redisstore.NewStore(client, cfg.ClaimTTL, cfg.RecordTTL, logger)
	}); err != nil {
		return nil, err
	}

	// Redis health check (implements secondary.HealthChecker)
	if err := c.Provide(func(client *goredis.Client) secondary.HealthChecker {
		return redisstore.NewHealthCheck(client)
	}); err != nil {
		return nil, err
	}

	// Collect all health checks
	if err := c.Provide(func(redisCheck secondary.HealthChecker) []secondary.HealthChecker {
		return []secondary.HealthChecker{redisCheck}
	}); err != nil {
		return nil, err
	}

	// Stripe signature verifier
	if err := c.Provide(stripeclient.NewVerifier); err != nil {
		return nil, err
	}

	// Stripe line-item resolver
	if err := c.Provide(stripeclient.NewResolver); err != nil {
		return nil, err
	}

	// SMTP notifier
	if err := c.Provide(smtpnotifier.NewNotifier); err != nil {
		return nil, err
	}

	// Kafka audit publisher
	if err := c.Provide(kafkaaudit.NewPublisher); err != nil {
		return nil, err
	}

	// --- Domain Services ---

	if err := c.Provide(func(
		verifier secondary.EventVerifier,
		resolver secondary.SessionResolver,
		notifier secondary.Notifier,
		store secondary.FulfillmentStore,
		audit secondary.AuditPublisher,
		cfg *config.Config,
		logger *zap.Logger,
	) *service.FulfillmentService {
		return service.NewFulfillmentService(verifier, resolver, notifier, store, audit, service.Options{
			AllowedEventTypes:      cfg.AllowedEventTypes,
			DownloadLinkTemplate:   cfg.DownloadLinkTemplate,
			RequireClientReference: cfg.RequireClientReference,
			ReportBatchSize:        cfg.BatchSize,
		}, logger)
	}); err != nil {
		return nil, err
	}

	// Bind concrete FulfillmentService to the primary port interface
	if err := c.Provide(func(s *service.FulfillmentService) primary.FulfillmentService {
		return s
	}); err != nil {
		return nil, err
	}

	// --- Primary Adapters ---

	// HTTP router
	if err := c.Provide(func(svc primary.FulfillmentService, checks []secondary.HealthChecker, cfg *config.Config, logger *zap.Logger) http.Handler {
		return httphandler.NewRouter(svc, checks, cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Worker
	if err := c.Provide(func(svc primary.FulfillmentService, cfg *config.Config, logger *zap.Logger) *worker.Worker {
		return worker.NewWorker(svc, cfg.PollInterval, logger)
	}); err != nil {
		return nil, err
	}

	return c, nil
}
