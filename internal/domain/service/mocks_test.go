package service

import (
	"context"
	"sync"

	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/domain/valueobject"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// mockVerifier implements secondary.EventVerifier for testing.
type mockVerifier struct {
	verifyFunc func(payload []byte, signature string) (*entity.ProviderEvent, error)

	verifyCalls int
}

func (m *mockVerifier) Verify(payload []byte, signature string) (*entity.ProviderEvent, error) {
	m.verifyCalls++
	if m.verifyFunc != nil {
		return m.verifyFunc(payload, signature)
	}
	return testProviderEvent(), nil
}

// mockResolver implements secondary.SessionResolver for testing.
type mockResolver struct {
	resolveFunc func(ctx context.Context, sessionID string) ([]entity.PurchasedItem, error)

	resolveCalls []string
}

func (m *mockResolver) ResolveItems(ctx context.Context, sessionID string) ([]entity.PurchasedItem, error) {
	m.resolveCalls = append(m.resolveCalls, sessionID)
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, sessionID)
	}
	return testItems(), nil
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, msg *entity.Notification) (string, error)

	sendCalls []*entity.Notification
}

func (m *mockNotifier) Send(ctx context.Context, msg *entity.Notification) (string, error) {
	m.mu.Lock()
	m.sendCalls = append(m.sendCalls, msg)
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return "delivery-1", nil
}

func (m *mockNotifier) calls() []*entity.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Notification(nil), m.sendCalls...)
}

// mockStore implements secondary.FulfillmentStore for testing. Its claim
// logic mirrors the real store's semantics: missing and failed records are
// claimable, fulfilled is terminal, in_progress rejects concurrent claims.
type mockStore struct {
	mu     sync.Mutex
	states map[string]entity.RecordState

	tryBeginErr      error
	markFulfilledErr error
	markFailedErr    error
	listFailedFunc   func(ctx context.Context, limit int) ([]entity.FulfillmentRecord, error)

	markFulfilledCalls []string
	markFailedCalls    []string
}

func newMockStore() *mockStore {
	return &mockStore{states: make(map[string]entity.RecordState)}
}

func (m *mockStore) TryBegin(_ context.Context, key valueobject.FulfillmentKey) (secondary.ClaimResult, error) {
	if m.tryBeginErr != nil {
		return "", m.tryBeginErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.states[key.String()] {
	case entity.RecordStateFulfilled:
		return secondary.ClaimAlreadyFulfilled, nil
	case entity.RecordStateInProgress:
		return secondary.ClaimAlreadyInProgress, nil
	default:
		m.states[key.String()] = entity.RecordStateInProgress
		return secondary.ClaimBegun, nil
	}
}

func (m *mockStore) MarkFulfilled(_ context.Context, key valueobject.FulfillmentKey) error {
	if m.markFulfilledErr != nil {
		return m.markFulfilledErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key.String()] = entity.RecordStateFulfilled
	m.markFulfilledCalls = append(m.markFulfilledCalls, key.String())
	return nil
}

func (m *mockStore) MarkFailed(_ context.Context, key valueobject.FulfillmentKey, reason string) error {
	if m.markFailedErr != nil {
		return m.markFailedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key.String()] = entity.RecordStateFailed
	m.markFailedCalls = append(m.markFailedCalls, key.String()+"|"+reason)
	return nil
}

func (m *mockStore) ListFailed(ctx context.Context, limit int) ([]entity.FulfillmentRecord, error) {
	if m.listFailedFunc != nil {
		return m.listFailedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockStore) state(key string) entity.RecordState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[key]
}

// mockAudit implements secondary.AuditPublisher for testing.
type mockAudit struct {
	publishErr error

	published []*entity.AuditEntry
}

func (m *mockAudit) Publish(_ context.Context, entry *entity.AuditEntry) error {
	m.published = append(m.published, entry)
	return m.publishErr
}

func (m *mockAudit) Close() error {
	return nil
}

// testProviderEvent returns a standard paid checkout event fixture.
func testProviderEvent() *entity.ProviderEvent {
	return &entity.ProviderEvent{
		ID:   "evt_1",
		Type: "checkout.session.completed",
		Session: entity.CheckoutSession{
			ID:                "cs_1",
			PaymentStatus:     "paid",
			ClientReferenceID: "order-42",
			CustomerEmail:     "fallback@example.com",
			DetailsEmail:      "buyer@example.com",
			DetailsName:       "Ada",
		},
	}
}

// testItems returns two fulfillable items.
func testItems() []entity.PurchasedItem {
	return []entity.PurchasedItem{
		{ProductName: "Field Guide", DigitalAssetID: "asset-1"},
		{ProductName: "Workbook", DigitalAssetID: "asset-2"},
	}
}

func testOptions() Options {
	return Options{
		AllowedEventTypes: []string{
			"checkout.session.completed",
			"checkout.session.async_payment_succeeded",
		},
		DownloadLinkTemplate: "https://downloads.example.com/%s",
	}
}
