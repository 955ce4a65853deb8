package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapp/internal/delivery"
	"blogapp/internal/mailer"
	"blogapp/internal/model"
	"blogapp/internal/queue"
	"blogapp/internal/repository"
	"blogapp/internal/storage"
)

type captureSender struct {
	sent []mailer.Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fixture struct {
	db       *gorm.DB
	sender   *captureSender
	consumer *delivery.Consumer
	attempts repository.DeliveryAttemptRepository
	post     *model.Post
	follower *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storage.NewTestDB(t)
	sender := &captureSender{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	author := &model.User{FirstName: "Alan", LastName: "Turing",
		Email: "alan@example.com", Status: model.UserStatusActive, IsActive: true}
	require.NoError(t, db.Create(author).Error)

	follower := &model.User{FirstName: "Joan", LastName: "Clarke",
		Email: "joan@example.com", Status: model.UserStatusActive, IsActive: true}
	require.NoError(t, db.Create(follower).Error)

	cat := &model.Category{Name: "math"}
	require.NoError(t, db.Create(cat).Error)

	post := &model.Post{UserID: author.ID, CategoryID: cat.ID,
		Title: "On Computable Numbers", Content: strings.Repeat("x", 300), IsDraft: false}
	require.NoError(t, db.Create(post).Error)

	attempts := repository.NewDeliveryAttemptRepository(db)
	consumer := delivery.NewConsumer(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		attempts,
		sender,
		"http://localhost:8080",
		log,
	)

	return &fixture{db: db, sender: sender, consumer: consumer,
		attempts: attempts, post: post, follower: follower}
}

func (f *fixture) attemptRows(t *testing.T) []model.DeliveryAttempt {
	t.Helper()
	rows, err := f.attempts.List(context.Background(), 0, 100)
	require.NoError(t, err)
	return rows
}

func TestConsumer_Handle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("successful delivery acks and records sent", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		out := f.consumer.Handle(ctx, queue.Fact{PostID: f.post.ID, UserID: f.follower.ID})
		assert.Equal(t, queue.Ack, out)

		require.Len(t, f.sender.sent, 1)
		msg := f.sender.sent[0]
		assert.Equal(t, "joan@example.com", msg.To)
		assert.Equal(t, "New Blog Post: On Computable Numbers", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "Hello Joan!")
		assert.Contains(t, msg.BodyHTML, "Alan Turing")

		rows := f.attemptRows(t)
		require.Len(t, rows, 1)
		assert.Equal(t, model.AttemptStatusSent, rows[0].Status)
		assert.NotNil(t, rows[0].SentAt)
	})

	t.Run("content excerpt is truncated to 200 runes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		out := f.consumer.Handle(ctx, queue.Fact{PostID: f.post.ID, UserID: f.follower.ID})
		require.Equal(t, queue.Ack, out)

		body := f.sender.sent[0].BodyHTML
		assert.Contains(t, body, strings.Repeat("x", 200)+"...")
		assert.False(t, strings.Contains(body, strings.Repeat("x", 201)))
	})

	t.Run("deleted post drops without requeue", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		out := f.consumer.Handle(ctx, queue.Fact{PostID: 9999, UserID: f.follower.ID})
		assert.Equal(t, queue.Drop, out)
		assert.Empty(t, f.sender.sent)

		rows := f.attemptRows(t)
		require.Len(t, rows, 1)
		assert.Equal(t, model.AttemptStatusFailed, rows[0].Status)
		assert.Equal(t, "post not found", rows[0].ErrorMessage)
	})

	t.Run("missing follower drops without requeue", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		out := f.consumer.Handle(ctx, queue.Fact{PostID: f.post.ID, UserID: 9999})
		assert.Equal(t, queue.Drop, out)

		rows := f.attemptRows(t)
		require.Len(t, rows, 1)
		assert.Equal(t, model.AttemptStatusFailed, rows[0].Status)
		assert.Equal(t, "user not found", rows[0].ErrorMessage)
	})

	t.Run("transport failure requeues, one failed row per attempt", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sender.err = errors.New("smtp: connection refused")

		fact := queue.Fact{PostID: f.post.ID, UserID: f.follower.ID}

		// Two redeliveries of the same message.
		assert.Equal(t, queue.Requeue, f.consumer.Handle(ctx, fact))
		assert.Equal(t, queue.Requeue, f.consumer.Handle(ctx, fact))

		rows := f.attemptRows(t)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, model.AttemptStatusFailed, row.Status)
			assert.Contains(t, row.ErrorMessage, "connection refused")
			assert.Nil(t, row.SentAt)
		}
	})

	t.Run("undeliverable recipient drops without requeue", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", f.follower.ID).
			Update("email", "not-an-address").Error)
		f.sender.err = fmt.Errorf("%w: %q", mailer.ErrInvalidRecipient, "not-an-address")

		out := f.consumer.Handle(ctx, queue.Fact{PostID: f.post.ID, UserID: f.follower.ID})
		assert.Equal(t, queue.Drop, out)

		rows := f.attemptRows(t)
		require.Len(t, rows, 1)
		assert.Equal(t, model.AttemptStatusFailed, rows[0].Status)
	})

	t.Run("retry after transient failure succeeds", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		fact := queue.Fact{PostID: f.post.ID, UserID: f.follower.ID}

		f.sender.err = errors.New("smtp: timeout")
		assert.Equal(t, queue.Requeue, f.consumer.Handle(ctx, fact))

		f.sender.err = nil
		assert.Equal(t, queue.Ack, f.consumer.Handle(ctx, fact))

		rows := f.attemptRows(t)
		require.Len(t, rows, 2)
	})
}
