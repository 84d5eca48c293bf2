package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client     *resend.Client
	fromEmail  string
	adminEmail string
	isDev      bool
	appURL     string
	appName    string
}

func NewEmailService(apiKey, fromEmail, adminEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		isDev:      isDev,
		appURL:     appURL,
		appName:    appName,
	}
}

func (s *EmailService) send(kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}

// SendSellerLeadNotification alerts the admin inbox about a new submission.
func (s *EmailService) SendSellerLeadNotification(lead *model.SellerLead) error {
	if s.adminEmail == "" {
		slog.Warn("seller lead notification skipped, no admin email configured", "lead_id", lead.ID)
		return nil
	}

	subject, body := sellerLeadNotificationTemplate(lead, s.appURL, s.appName)
	return s.send("seller_lead_notification", s.adminEmail, subject, body)
}

func (s *EmailService) SendSellerConfirmation(email, name string) error {
	subject, body := sellerConfirmationTemplate(name, s.appName)
	return s.send("seller_confirmation", email, subject, body)
}

func (s *EmailService) SendUnlockConfirmation(email, investorName string, lead *model.SellerLead, exclusiveUntil time.Time) error {
	subject, body := unlockConfirmationTemplate(investorName, lead, exclusiveUntil, s.appName)
	return s.send("unlock_confirmation", email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, name, token string) error {
	resetURL := fmt.Sprintf("%s/investor/reset-password?token=%s", s.appURL, token)
	subject, body := passwordResetEmailTemplate(name, resetURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "password_reset", "to", email, "subject", subject, "url", resetURL)
		return nil
	}

	return s.send("password_reset", email, subject, body)
}
