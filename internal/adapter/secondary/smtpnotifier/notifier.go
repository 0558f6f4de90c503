package smtpnotifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/papermint/fulfillment/internal/config"
	"github.com/papermint/fulfillment/internal/domain/entity"
	"github.com/papermint/fulfillment/internal/port/secondary"
)

// Notifier implements secondary.Notifier over SMTP.
type Notifier struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

// NewNotifier creates an SMTP notifier from the application configuration.
func NewNotifier(cfg *config.Config, logger *zap.Logger) secondary.Notifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	logger.Info("smtp notifier initialized",
		zap.String("host", cfg.SMTPHost),
		zap.Int("port", cfg.SMTPPort),
	)

	return &Notifier{
		dialer:   dialer,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger.Named("smtp-notifier"),
	}
}

// Send delivers one message and returns a delivery identifier.
func (n *Notifier) Send(ctx context.Context, msg *entity.Notification) (string, error) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", msg.Subject)

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	// gomail has no context support; honor the caller's deadline around it.
	errCh := make(chan error, 1)
	go func() {
		errCh <- n.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errCh:
		if err != nil {
			return "", fmt.Errorf("sending mail to %q: %w", msg.Recipient, err)
		}
	}

	deliveryID := uuid.NewString()
	n.logger.Debug("mail delivered",
		zap.String("delivery_id", deliveryID),
		zap.String("recipient", msg.Recipient),
	)

	return deliveryID, nil
}
