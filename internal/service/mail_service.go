package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rented/internal/config"
	"rented/internal/models"
	"rented/internal/validation"

	"gopkg.in/gomail.v2"
)

// MailDialer sends composed messages. gomail's Dialer satisfies it; tests
// substitute a recording stub.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// MailService delivers contact form messages to the site inbox and sends the
// sender an acknowledgement copy.
type MailService struct {
	dialer  MailDialer
	from    string
	inbox   string
	enabled bool
}

// NewMailService builds a MailService from configuration. When no SMTP host
// is configured the service is disabled and submissions are logged instead of
// sent, so the contact endpoint keeps working in development.
func NewMailService(cfg *config.Config) *MailService {
	svc := &MailService{
		from:  cfg.MailFrom,
		inbox: cfg.ContactEmail,
	}
	if cfg.SMTPHost != "" {
		svc.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		svc.enabled = true
	}
	return svc
}

// NewMailServiceWithDialer wires an explicit dialer, used by tests.
func NewMailServiceWithDialer(dialer MailDialer, from, inbox string) *MailService {
	return &MailService{dialer: dialer, from: from, inbox: inbox, enabled: true}
}

// SendContact validates and delivers a contact form submission.
func (s *MailService) SendContact(ctx context.Context, in ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" {
		return models.NewValidationError("name is required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}
	if in.Message == "" {
		return models.NewValidationError("message is required")
	}
	if len(in.Message) > 5000 {
		return models.NewValidationError("message must not exceed 5000 characters")
	}

	if !s.enabled {
		slog.InfoContext(ctx, "mail disabled, dropping contact message",
			"from", in.Email, "name", in.Name)
		return nil
	}

	inbox := gomail.NewMessage()
	inbox.SetHeader("From", s.from)
	inbox.SetHeader("To", s.inbox)
	inbox.SetHeader("Reply-To", in.Email)
	inbox.SetHeader("Subject", fmt.Sprintf("Contact form: message from %s", in.Name))
	inbox.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", in.Name, in.Email, in.Message))

	ack := gomail.NewMessage()
	ack.SetHeader("From", s.from)
	ack.SetHeader("To", in.Email)
	ack.SetHeader("Subject", "We received your message")
	ack.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nThanks for getting in touch. We received your message and will reply soon.\n\nYour message:\n%s\n",
		in.Name, in.Message))

	if err := s.dialer.DialAndSend(inbox, ack); err != nil {
		slog.ErrorContext(ctx, "failed to send contact mail", "error", err)
		return models.NewInternalError(fmt.Errorf("sending contact mail: %w", err))
	}
	return nil
}
