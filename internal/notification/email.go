// internal/notification/email.go

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"github.com/prempath/prempath-backend/internal/config"
)

// EmailService delivers transactional email. Used for password resets
// and optional like digests.
type EmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NewEmailService picks the provider from configuration. Unknown
// providers fall back to the mock so development never needs real
// credentials.
func NewEmailService(cfg *config.Config) EmailService {
	switch cfg.EmailProvider {
	case "sendgrid":
		return &sendGridEmailService{
			apiKey: cfg.SendGridAPIKey,
			from:   cfg.EmailFrom,
		}
	case "smtp":
		return &smtpEmailService{
			dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
			from:   cfg.EmailFrom,
		}
	default:
		return &mockEmailService{}
	}
}

type sendGridEmailService struct {
	apiKey string
	from   string
}

func (s *sendGridEmailService) SendEmail(_ context.Context, to, subject, body string) error {
	from := mail.NewEmail("PremPath", s.from)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}
	return nil
}

type smtpEmailService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpEmailService) SendEmail(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, "PremPath"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

// mockEmailService logs instead of sending
type mockEmailService struct{}

func (s *mockEmailService) SendEmail(_ context.Context, to, subject, _ string) error {
	log.Printf("[MOCK EMAIL] to=%s subject=%q", to, subject)
	return nil
}
