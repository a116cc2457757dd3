// internal/notification/sms.go

package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/prempath/prempath-backend/internal/config"
)

// SMSService delivers SMS. Optional channel for match alerts.
type SMSService interface {
	SendSMS(ctx context.Context, to, message string) error
}

func NewSMSService(cfg *config.Config) SMSService {
	if cfg.SMSProvider == "twilio" {
		return &twilioSMSService{
			client: twilio.NewRestClientWithParams(twilio.ClientParams{
				Username: cfg.TwilioAccountSID,
				Password: cfg.TwilioAuthToken,
			}),
			from: cfg.TwilioPhoneNumber,
		}
	}
	return &mockSMSService{}
}

type twilioSMSService struct {
	client *twilio.RestClient
	from   string
}

func (s *twilioSMSService) SendSMS(_ context.Context, to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if resp.Sid != nil {
		log.Printf("Sent SMS to %s, SID %s", to, *resp.Sid)
	}
	return nil
}

type mockSMSService struct{}

func (s *mockSMSService) SendSMS(_ context.Context, to, message string) error {
	log.Printf("[MOCK SMS] to=%s message=%q", to, message)
	return nil
}
