package mailer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/internal/mailer"
)

func validMessage() mailer.Message {
	return mailer.Message{
		To:       "reader@example.com",
		ToName:   "Avid Reader",
		Subject:  "New Post",
		BodyHTML: "<p>hello</p>",
	}
}

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validMessage().Validate())
	})

	t.Run("bad recipient", func(t *testing.T) {
		t.Parallel()
		msg := validMessage()
		msg.To = "not-an-address"
		assert.ErrorIs(t, msg.Validate(), mailer.ErrInvalidRecipient)
	})

	t.Run("empty subject", func(t *testing.T) {
		t.Parallel()
		msg := validMessage()
		msg.Subject = ""
		assert.ErrorIs(t, msg.Validate(), mailer.ErrEmptySubject)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		msg := validMessage()
		msg.BodyHTML = ""
		assert.ErrorIs(t, msg.Validate(), mailer.ErrEmptyBody)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender, err := mailer.NewDevSender(filepath.Join(dir, "out"))
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), validMessage()))

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, "out", entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "<p>hello</p>"))
	assert.True(t, strings.Contains(string(content), "reader@example.com"))

	t.Run("invalid message rejected", func(t *testing.T) {
		msg := validMessage()
		msg.To = "nope"
		assert.Error(t, sender.Send(context.Background(), msg))
	})
}

func TestNewSMTPSender(t *testing.T) {
	t.Parallel()

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()
		_, err := mailer.NewSMTPSender(mailer.Config{Host: "smtp.example.com", Port: 587})
		assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
	})

	t.Run("complete config", func(t *testing.T) {
		t.Parallel()
		sender, err := mailer.NewSMTPSender(mailer.Config{
			Host:      "smtp.example.com",
			Port:      587,
			Username:  "user",
			Password:  "pass",
			FromEmail: "noreply@example.com",
			FromName:  "BlogApp",
		})
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}
