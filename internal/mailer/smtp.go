package mailer

import (
	"context"
	"errors"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers mail over an authenticated STARTTLS session.
type SMTPSender struct {
	client    *gomail.Client
	fromEmail string
	fromName  string
}

// NewSMTPSender builds the production sender from config.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if !cfg.HasCredentials() {
		return nil, ErrInvalidConfig
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &SMTPSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// Send delivers one message. A single attempt, no internal retries.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromEmail); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return errors.Join(ErrInvalidRecipient, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.BodyHTML)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
