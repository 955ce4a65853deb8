// Package mailer provides the outbound mail capability consumed by the
// notification pipeline.
//
// Sender is the single abstraction every caller depends on. The SMTP
// implementation is used in production; DevSender writes rendered
// emails to disk for local development, selected automatically when
// SMTP credentials are absent. Neither implementation retries: all
// retry logic lives in the delivery consumer.
package mailer

import (
	"context"
	"fmt"
	"net/mail"
)

// Sender delivers one rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a fully rendered outbound email.
type Message struct {
	To       string // recipient address
	ToName   string // recipient display name
	Subject  string
	BodyHTML string
}

// Validate checks the message is deliverable before a transport is
// engaged.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, m.To)
	}
	if m.Subject == "" {
		return ErrEmptySubject
	}
	if m.BodyHTML == "" {
		return ErrEmptyBody
	}
	return nil
}
