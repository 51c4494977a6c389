package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// EmailService delivers transactional mail
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailServiceImpl implements EmailService on top of a provider
type EmailServiceImpl struct {
	provider EmailProvider
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(email, subject, message string) error
}

// NewEmailService creates a new email service
func NewEmailService(provider EmailProvider) EmailService {
	return &EmailServiceImpl{provider: provider}
}

// Send delivers one message through the configured provider
func (s *EmailServiceImpl) Send(ctx context.Context, to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("email provider not configured")
	}
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("invalid email address: %s", to)
	}
	return s.provider.SendEmail(to, subject, body)
}

type MockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(email, subject, message string) error {
	log.Printf("Email sent to %s [%s]: %s", email, subject, message)
	return nil
}

// SMTPEmailProvider sends mail through a plain SMTP relay
type SMTPEmailProvider struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailProvider creates a new SMTP email provider
func NewSMTPEmailProvider(host string, port int, username, password, from string) EmailProvider {
	return &SMTPEmailProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (p *SMTPEmailProvider) SendEmail(email, subject, message string) error {
	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	auth := smtp.PlainAuth("", p.username, p.password, p.host)

	msg := strings.Join([]string{
		"From: " + p.from,
		"To: " + email,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		message,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, p.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email, err)
	}
	return nil
}
