// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"errors"

	"streetmix-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp host is not configured")

// Email is a plain text message. ReplyTo is optional.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

type IEmailService interface {
	Send(email Email) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	var d sender
	if host != "" {
		d = gomail.NewDialer(host, port, username, password)
	}

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) Send(email Email) error {
	if s.dialer == nil {
		return ErrNotConfigured
	}

	m := s.compose(email)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send email", map[string]interface{}{"to": email.To, "error": err})
		return err
	}

	s.logger.Info("Mailer", "Email sent", map[string]interface{}{"to": email.To, "subject": email.Subject})
	return nil
}

func (s *emailService) compose(email Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", email.To)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	return m
}
