package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/fsfcare/care-api/internal/config"
)

type Service interface {
	SendAccessCode(ctx context.Context, to, code, role string) error
	SendWelcome(ctx context.Context, to, name string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.MailConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAccessCode(ctx context.Context, to, code, role string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your access code")
	m.SetBody("text/plain", fmt.Sprintf(
		"An access code has been generated for you.\n\nCode: %s\nRole: %s\n\nEnter it in the app to activate your account.",
		code, role,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send access code email: %w", err)
	}
	return nil
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s, your account has been created.", name))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
