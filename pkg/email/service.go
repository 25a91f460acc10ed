package email

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Mailer is what the rest of the application sends mail through.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendMessageDigest(ctx context.Context, email string, data MessageDigestData) error
}

// NewMailer returns the Resend-backed service, or a mailer that only logs
// when no API key is configured.
func NewMailer(apiKey, from string, log logrus.FieldLogger) (Mailer, error) {
	if apiKey == "" {
		log.Warn("RESEND_API_KEY not set, emails will only be logged")
		return &logMailer{log: log}, nil
	}
	return NewEmailService(apiKey, from, log)
}

type logMailer struct {
	log logrus.FieldLogger
}

func (m *logMailer) SendWelcomeEmail(_ context.Context, email, name string) error {
	m.log.WithField("to", email).Info("Skipping welcome email")
	return nil
}

func (m *logMailer) SendMessageDigest(_ context.Context, email string, data MessageDigestData) error {
	m.log.WithFields(logrus.Fields{"to": email, "messages": len(data.Messages)}).Info("Skipping message digest")
	return nil
}
