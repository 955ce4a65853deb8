package mailer

import "errors"

var (
	// ErrInvalidConfig is returned when the SMTP configuration is unusable.
	ErrInvalidConfig = errors.New("mailer: invalid configuration")
	// ErrInvalidRecipient is returned for an unparseable recipient address.
	ErrInvalidRecipient = errors.New("mailer: invalid recipient address")
	// ErrEmptySubject is returned for a message without a subject.
	ErrEmptySubject = errors.New("mailer: empty subject")
	// ErrEmptyBody is returned for a message without a body.
	ErrEmptyBody = errors.New("mailer: empty body")
	// ErrSendFailed is returned when the transport rejects the message.
	ErrSendFailed = errors.New("mailer: failed to send email")
)
