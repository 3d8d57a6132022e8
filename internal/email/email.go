package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v5"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/config"
)

var (
	ErrNotConfigured = errors.New("mailgun configuration missing")
	ErrNoRecipient   = errors.New("recipient is required")
)

// deliverFunc makes a single delivery attempt.
type deliverFunc func(ctx context.Context, recipient, subject, html string) error

// Sender delivers printed ayat by e-mail.
type Sender struct {
	deliver     deliverFunc
	logger      *zap.Logger
	maxAttempts int
	backoff     time.Duration
	timeout     time.Duration
}

// NewSender builds a Sender from cfg. It returns ErrNotConfigured when any
// Mailgun setting is missing.
func NewSender(cfg config.Mailgun, logger *zap.Logger) (*Sender, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	return newSender(mailgunDeliver(cfg), logger), nil
}

func mailgunDeliver(cfg config.Mailgun) deliverFunc {
	mg := mailgun.NewMailgun(cfg.APIKey)
	return func(ctx context.Context, recipient, subject, html string) error {
		message := mailgun.NewMessage(cfg.Domain, cfg.Sender, subject, "")
		if err := message.AddRecipient(recipient); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", recipient, err)
		}
		message.SetHTML(html)

		_, err := mg.Send(ctx, message)
		return err
	}
}

func newSender(deliver deliverFunc, logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{
		deliver:     deliver,
		logger:      logger,
		maxAttempts: 5,
		backoff:     time.Second,
		timeout:     10 * time.Second,
	}
}

// Send mails body as HTML to recipient, retrying with exponential backoff.
func (s *Sender) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return ErrNoRecipient
	}
	html := wrap(body)

	var lastErr error
	backoff := s.backoff

	for i := 0; i < s.maxAttempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		lastErr = s.deliver(attemptCtx, recipient, subject, html)
		cancel()

		if lastErr == nil {
			s.logger.Info("email sent", zap.String("recipient", recipient), zap.Int("attempt", i+1))
			return nil
		}
		s.logger.Warn("email send failed", zap.Int("attempt", i+1), zap.Error(lastErr))

		if i < s.maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", s.maxAttempts, lastErr)
}

func wrap(body string) string {
	return fmt.Sprintf(`
<html>
<body>
	<p>%s</p>
</body>
</html>
`, body)
}
