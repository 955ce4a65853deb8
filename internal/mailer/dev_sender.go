package mailer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// DevSender writes rendered emails to a local directory instead of
// sending them. It stands in for the SMTP sender when credentials are
// not configured, so the rest of the pipeline behaves identically in
// development.
type DevSender struct {
	dir string
}

// NewDevSender creates a sender writing into dir, creating it if needed.
func NewDevSender(dir string) (*DevSender, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mailer: create dev output dir: %w", err)
	}
	return &DevSender{dir: dir}, nil
}

// Send writes the message body to a timestamped HTML file.
func (s *DevSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	name := fmt.Sprintf("%d_%s_%s.html",
		time.Now().UnixNano(),
		unsafeFilenameChars.ReplaceAllString(msg.To, "_"),
		unsafeFilenameChars.ReplaceAllString(msg.Subject, "_"))

	content := fmt.Sprintf("<!-- To: %s <%s> -->\n<!-- Subject: %s -->\n%s",
		msg.ToName, msg.To, msg.Subject, msg.BodyHTML)

	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("mailer: write dev email: %w", err)
	}
	return nil
}
