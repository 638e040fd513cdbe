package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const contactSubjectPrefix = "Go VV Contact: "

// Mailer delivers a plain-text email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ContactService relays contact form messages. Delivery is best effort.
type ContactService struct {
	mailer Mailer
}

// NewContactService creates a contact service; a nil mailer means email is not configured
func NewContactService(mailer Mailer) *ContactService {
	return &ContactService{mailer: mailer}
}

// Send reports whether the message was handed to the transport. It never fails.
func (s *ContactService) Send(ctx context.Context, email, subject, message string) bool {
	if s.mailer == nil {
		log.Warn().Str("to", email).Msg("Email transport not configured, contact message dropped")
		return false
	}

	if err := s.mailer.Send(ctx, email, contactSubjectPrefix+subject, message); err != nil {
		log.Error().Err(err).Str("to", email).Msg("Failed to send contact email")
		return false
	}

	log.Info().Str("to", email).Msg("Contact email sent")
	return true
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer sends mail over implicit TLS with plain auth
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a mailer; the username doubles as the sender address
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// Send implements Mailer
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := m.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
