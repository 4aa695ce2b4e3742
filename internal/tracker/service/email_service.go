package service

import (
	"context"
	"fmt"
	"time"

	"sttock-tracker/internal/tracker/config"
	"sttock-tracker/pkg/logger"

	"github.com/mailgun/mailgun-go/v4"
)

// EmailService sends account verification emails.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, toEmail, username, verificationToken string) error
}

// NewEmailService selects an email provider from configuration. An
// incomplete Mailgun configuration falls back to the mock sender so
// sign-up keeps working in development.
func NewEmailService(cfg *config.Config, log *logger.Logger) EmailService {
	if cfg.Email.Provider == "mailgun" {
		if cfg.Email.MailgunDomain == "" || cfg.Email.MailgunAPIKey == "" || cfg.Email.SenderEmail == "" {
			log.Warn("Mailgun configuration incomplete, falling back to mock email sender")
			return &mockEmailService{cfg: cfg, logger: log}
		}
		return &mailgunEmailService{
			mg:     mailgun.NewMailgun(cfg.Email.MailgunDomain, cfg.Email.MailgunAPIKey),
			cfg:    cfg,
			logger: log,
		}
	}
	return &mockEmailService{cfg: cfg, logger: log}
}

type mailgunEmailService struct {
	mg     *mailgun.MailgunImpl
	cfg    *config.Config
	logger *logger.Logger
}

func (s *mailgunEmailService) SendVerificationEmail(ctx context.Context, toEmail, username, verificationToken string) error {
	sender := s.cfg.Email.SenderEmail
	if s.cfg.Email.SenderName != "" {
		sender = fmt.Sprintf("%s <%s>", s.cfg.Email.SenderName, s.cfg.Email.SenderEmail)
	}

	link := verificationLink(s.cfg.Email.VerificationBaseURL, verificationToken)
	body := fmt.Sprintf("Hi %s,\n\nConfirm your email address to activate your account:\n\n%s\n\nThe link expires in 24 hours.\n", username, link)
	message := s.mg.NewMessage(sender, "Verify your email address", body, toEmail)

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := s.mg.Send(sendCtx, message)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	s.logger.Info("Verification email sent", logger.StringField("email", toEmail))
	return nil
}

// mockEmailService logs the verification link instead of sending it.
type mockEmailService struct {
	cfg    *config.Config
	logger *logger.Logger
}

func (s *mockEmailService) SendVerificationEmail(ctx context.Context, toEmail, username, verificationToken string) error {
	s.logger.Info("Mock verification email",
		logger.StringField("email", toEmail),
		logger.StringField("link", verificationLink(s.cfg.Email.VerificationBaseURL, verificationToken)),
	)
	return nil
}

func verificationLink(baseURL, verificationToken string) string {
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1/auth/verify"
	}
	return fmt.Sprintf("%s?token=%s", baseURL, verificationToken)
}
