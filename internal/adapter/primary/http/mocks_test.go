package http

import (
	"context"

	"github.com/papermint/fulfillment/internal/domain/entity"
)

// mockFulfillmentService implements primary.FulfillmentService for testing.
type mockFulfillmentService struct {
	handleFunc func(ctx context.Context, payload []byte, signature string) (*entity.Outcome, error)
	relayFunc  func(ctx context.Context, msg *entity.Notification) (string, error)
	reportFunc func(ctx context.Context) error

	handleCalls int
	relayCalls  int
}

func (m *mockFulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*entity.Outcome, error) {
	m.handleCalls++
	if m.handleFunc != nil {
		return m.handleFunc(ctx, payload, signature)
	}
	return &entity.Outcome{
		Status: entity.OutcomeFulfilled,
		Result: &entity.FulfillmentResult{Attempted: 1, Succeeded: 1},
	}, nil
}

func (m *mockFulfillmentService) Relay(ctx context.Context, msg *entity.Notification) (string, error) {
	m.relayCalls++
	if m.relayFunc != nil {
		return m.relayFunc(ctx, msg)
	}
	return "msg-1", nil
}

func (m *mockFulfillmentService) ReportFailedSessions(ctx context.Context) error {
	if m.reportFunc != nil {
		return m.reportFunc(ctx)
	}
	return nil
}

// mockHealthChecker implements secondary.HealthChecker for testing.
type mockHealthChecker struct {
	name     string
	checkErr error
}

func (m *mockHealthChecker) Name() string {
	return m.name
}

func (m *mockHealthChecker) Check(_ context.Context) error {
	return m.checkErr
}
