package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papermint/fulfillment/internal/domain"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/domain/valueobject"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// Options carries the policy knobs of the fulfillment engine. The container
// fills them from configuration.
type Options struct {
	// AllowedEventTypes is the allow-set of provider event types that
	// proceed to fulfillment. Everything else is acknowledged and ignored.
	AllowedEventTypes []string

	// DownloadLinkTemplate builds the purchaser-facing link; it must contain
	// exactly one %s verb for the digital asset identifier.
	DownloadLinkTemplate string

	// RequireClientReference rejects sessions that did not originate from
	// the expected purchase flow (no client reference attached).
	RequireClientReference bool

	// ReportBatchSize caps how many failed records one report cycle logs.
	ReportBatchSize int
}

// FulfillmentService turns one verified payment-completed event into exactly
// one outbound notification per fulfillable item, at most once per session.
type FulfillmentService struct {
	verifier secondary.EventVerifier
	resolver secondary.SessionResolver
	notifier secondary.Notifier
	store    secondary.FulfillmentStore
	audit    secondary.AuditPublisher
	logger   *zap.Logger

	allowedTypes           map[entity.EventType]struct{}
	linkTemplate           string
	requireClientReference bool
	reportBatchSize        int
}

// NewFulfillmentService creates a FulfillmentService with its dependencies injected.
func NewFulfillmentService(
	verifier secondary.EventVerifier,
	resolver secondary.SessionResolver,
	notifier secondary.Notifier,
	store secondary.FulfillmentStore,
	audit secondary.AuditPublisher,
	opts Options,
	logger *zap.Logger,
) *FulfillmentService {
	allowed := make(map[entity.EventType]struct{}, len(opts.AllowedEventTypes))
	for _, t := range opts.AllowedEventTypes {
		allowed[entity.EventType(t)] = struct{}{}
	}

	linkTemplate := opts.DownloadLinkTemplate
	if linkTemplate == "" {
		linkTemplate = domain.DefaultLinkTemplate
	}

	batchSize := opts.ReportBatchSize
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}

	return &FulfillmentService{
		verifier:               verifier,
		resolver:               resolver,
		notifier:               notifier,
		store:                  store,
		audit:                  audit,
		logger:                 logger.Named("fulfillment-service"),
		allowedTypes:           allowed,
		linkTemplate:           linkTemplate,
		requireClientReference: opts.RequireClientReference,
		reportBatchSize:        batchSize,
	}
}

// HandleWebhook runs one fulfillment: verify, classify, claim the session,
// resolve line items, deliver per item, write the terminal state.
func (s *FulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*entity.Outcome, error) {
	providerEvent, err := s.verifier.Verify(payload, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadSignature, err)
	}

	ev, ignoreReason := s.classify(providerEvent)
	if ignoreReason != "" {
		s.logger.Info("event ignored",
			zap.String("event_id", providerEvent.ID),
			zap.String("event_type", providerEvent.Type),
			zap.String("reason", ignoreReason),
		)
		return entity.Ignored(ignoreReason), nil
	}

	logger := s.logger.With(
		zap.String("event_id", ev.EventID),
		zap.String("session_id", ev.SessionID),
	)

	if !ev.HasEmail() {
		// A redelivery cannot make the address appear, so this is
		// acknowledged rather than retried. Logged for manual follow-up.
		logger.Warn("no customer email on session, fulfillment skipped")
		return &entity.Outcome{Status: entity.OutcomeNoEmail, Reason: "no_email"}, nil
	}

	key, err := valueobject.NewFulfillmentKey(ev.SessionID)
	if err != nil {
		return entity.Ignored("missing_session_id"), nil
	}

	claim, err := s.store.TryBegin(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: claiming fulfillment record: %v", domain.ErrTransient, err)
	}

	switch claim {
	case secondary.ClaimAlreadyFulfilled:
		logger.Info("session already fulfilled, skipping redelivery")
		return &entity.Outcome{Status: entity.OutcomeAlreadyFulfilled}, nil
	case secondary.ClaimAlreadyInProgress:
		logger.Info("session claimed by a concurrent delivery, skipping")
		return &entity.Outcome{Status: entity.OutcomeInProgress, Reason: "in_progress"}, nil
	}

	items, err := s.resolver.ResolveItems(ctx, ev.SessionID)
	if err != nil {
		if markErr := s.store.MarkFailed(ctx, key, "line_item_resolution"); markErr != nil {
			logger.Error("failed to release claim after resolver error", zap.Error(markErr))
		}
		return nil, fmt.Errorf("%w: resolving line items: %v", domain.ErrTransient, err)
	}
	ev.Items = items

	result := s.deliverItems(ctx, ev, logger)

	if result.HasTransientFailure() {
		// Leave the record non-terminal so a provider redelivery resumes
		// this session. Missing-asset failures alone do not block
		// completion; nothing a retry could fix.
		if markErr := s.store.MarkFailed(ctx, key, "delivery_incomplete"); markErr != nil {
			logger.Error("failed to mark record failed", zap.Error(markErr))
		}
		s.publishAudit(ctx, ev, result, string(entity.RecordStateFailed))
		return &entity.Outcome{
			Status: entity.OutcomeIncomplete,
			Reason: "delivery_incomplete",
			Result: result,
		}, nil
	}

	if err := s.store.MarkFulfilled(ctx, key); err != nil {
		return nil, fmt.Errorf("%w: marking record fulfilled: %v", domain.ErrTransient, err)
	}
	s.publishAudit(ctx, ev, result, string(entity.RecordStateFulfilled))

	logger.Info("session fulfilled",
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failures", len(result.Failures)),
	)

	return &entity.Outcome{Status: entity.OutcomeFulfilled, Result: result}, nil
}

// classify builds a FulfillmentEvent from a verified provider envelope, or
// returns a non-empty reason when the event should be acknowledged and ignored.
func (s *FulfillmentService) classify(pe *entity.ProviderEvent) (*entity.FulfillmentEvent, string) {
	if _, ok := s.allowedTypes[entity.EventType(pe.Type)]; !ok {
		return nil, "event_type"
	}
	if pe.Session.ID == "" {
		return nil, "missing_session_id"
	}
	if s.requireClientReference && pe.Session.ClientReferenceID == "" {
		return nil, "unknown_purchase_flow"
	}

	status := entity.PaymentStatus(pe.Session.PaymentStatus)
	if status != entity.PaymentStatusPaid {
		return nil, "not_paid"
	}

	email := pe.Session.DetailsEmail
	if email == "" {
		email = pe.Session.CustomerEmail
	}

	return &entity.FulfillmentEvent{
		EventID:       pe.ID,
		SessionID:     pe.Session.ID,
		Type:          entity.EventType(pe.Type),
		PaymentStatus: status,
		CustomerEmail: email,
		CustomerName:  pe.Session.DetailsName,
	}, ""
}

// deliverItems notifies each fulfillable item in provider order. One item's
// failure never prevents attempting the remaining items.
func (s *FulfillmentService) deliverItems(ctx context.Context, ev *entity.FulfillmentEvent, logger *zap.Logger) *entity.FulfillmentResult {
	result := &entity.FulfillmentResult{}

	for _, item := range ev.Items {
		itemLogger := logger.With(zap.String("product", item.ProductName))

		if !item.Fulfillable() {
			itemLogger.Warn("product has no digital asset attached")
			result.Failures = append(result.Failures, entity.ItemFailure{
				ProductName: item.ProductName,
				Reason:      entity.FailureReasonMissingAsset,
			})
			continue
		}

		result.Attempted++

		deliveryID, err := s.notifier.Send(ctx, s.buildNotification(ev, item))
		if err != nil {
			itemLogger.Warn("notification delivery failed", zap.Error(err))
			result.Failures = append(result.Failures, entity.ItemFailure{
				ProductName: item.ProductName,
				Reason:      entity.FailureReasonDeliveryFailed,
				Detail:      err.Error(),
			})
			continue
		}

		result.Succeeded++
		itemLogger.Info("download link sent", zap.String("delivery_id", deliveryID))
	}

	return result
}

const htmlBodyTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Thank you for your purchase, %s!</h2>
  <p>Your payment has been successfully processed.</p>
  <p><strong>Product:</strong> %s</p>
  <p>You can access your download here:</p>
  <p style="margin: 20px 0;">
    <a href="%s" style="background-color: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block;">Download</a>
  </p>
  <p>Or copy this link: <a href="%s">%s</a></p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">If you have any questions, please reply to this email.</p>
</div>`

const textBodyTemplate = `Thank you for your purchase, %s!

Your payment has been successfully processed.
Product: %s

Download here: %s

If you have any questions, please reply to this email.`

func (s *FulfillmentService) buildNotification(ev *entity.FulfillmentEvent, item entity.PurchasedItem) *entity.Notification {
	link := fmt.Sprintf(s.linkTemplate, item.DigitalAssetID)

	name := ev.CustomerName
	if name == "" {
		name = "valued customer"
	}

	return &entity.Notification{
		Recipient: ev.CustomerEmail,
		Subject:   fmt.Sprintf("Your Purchase: %s", item.ProductName),
		HTMLBody:  fmt.Sprintf(htmlBodyTemplate, name, item.ProductName, link, link, link),
		TextBody:  fmt.Sprintf(textBodyTemplate, name, item.ProductName, link),
	}
}

// publishAudit records the run on the audit stream. Best effort: a publish
// failure is logged, never surfaced to the provider.
func (s *FulfillmentService) publishAudit(ctx context.Context, ev *entity.FulfillmentEvent, result *entity.FulfillmentResult, status string) {
	if s.audit == nil {
		return
	}

	entry := &entity.AuditEntry{
		ID:        uuid.NewString(),
		EventID:   ev.EventID,
		SessionID: ev.SessionID,
		Status:    status,
		Attempted: result.Attempted,
		Succeeded: result.Succeeded,
		Failures:  result.Failures,
		At:        time.Now().UTC(),
	}

	if err := s.audit.Publish(ctx, entry); err != nil {
		s.logger.Warn("audit publish failed",
			zap.String("session_id", ev.SessionID),
			zap.Error(err),
		)
	}
}

// Relay validates and delivers one message for an authenticated caller.
func (s *FulfillmentService) Relay(ctx context.Context, msg *entity.Notification) (string, error) {
	if err := validateNotification(msg); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidMessage, err)
	}

	deliveryID, err := s.notifier.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("%w: relaying message: %v", domain.ErrTransient, err)
	}

	s.logger.Info("message relayed",
		zap.String("recipient", msg.Recipient),
		zap.String("delivery_id", deliveryID),
	)

	return deliveryID, nil
}

func validateNotification(msg *entity.Notification) error {
	if msg.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if msg.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return fmt.Errorf("a text or html body is required")
	}
	return nil
}

// ReportFailedSessions logs sessions stuck in the failed state so they can
// be followed up manually.
func (s *FulfillmentService) ReportFailedSessions(ctx context.Context) error {
	records, err := s.store.ListFailed(ctx, s.reportBatchSize)
	if err != nil {
		return fmt.Errorf("listing failed fulfillment records: %w", err)
	}

	for _, rec := range records {
		s.logger.Warn("session awaiting manual follow-up",
			zap.String("session_id", rec.SessionID),
			zap.String("reason", rec.Reason),
		)
	}

	return nil
}
