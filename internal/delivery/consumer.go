// Package delivery implements the long-running consumer that drains
// fan-out facts from the queue and sends follower emails.
//
// Classification of outcomes, per message:
//
//   - referenced post or user no longer exists: terminal — record a
//     Failed attempt and drop without requeue, redelivery cannot help;
//   - transport rejects the send: transient — record a Failed attempt
//     and requeue for another try (no cap, no backoff);
//   - anything unexpected (store errors, render errors): record and
//     drop, fail-closed so a poison message cannot loop forever.
//
// Every attempt, success or failure, appends one DeliveryAttempt row;
// a redelivered message produces a new row per attempt.
package delivery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"blogapp/internal/logger"
	"blogapp/internal/mailer"
	"blogapp/internal/model"
	"blogapp/internal/queue"
	"blogapp/internal/repository"
)

// Source is the slice of the queue client the consumer runs against.
type Source interface {
	Consume(ctx context.Context, handler queue.Handler) error
}

// Consumer re-validates each fact against the store, renders the
// follower email, and acknowledges according to the outcome.
type Consumer struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	attempts repository.DeliveryAttemptRepository
	sender   mailer.Sender
	baseURL  string
	log      *slog.Logger
}

// NewConsumer constructs a Consumer.
func NewConsumer(
	posts repository.PostRepository,
	users repository.UserRepository,
	attempts repository.DeliveryAttemptRepository,
	sender mailer.Sender,
	baseURL string,
	log *slog.Logger,
) *Consumer {
	return &Consumer{
		posts:    posts,
		users:    users,
		attempts: attempts,
		sender:   sender,
		baseURL:  baseURL,
		log:      log,
	}
}

// Run blocks draining the queue until ctx is cancelled. In-flight
// messages finish their ack/nack before Run returns.
func (c *Consumer) Run(ctx context.Context, src Source) error {
	return src.Consume(ctx, c.Handle)
}

// Handle processes one fan-out fact.
func (c *Consumer) Handle(ctx context.Context, fact queue.Fact) queue.Outcome {
	post, err := c.posts.FindByID(ctx, fact.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.recordFailure(ctx, fact, "post not found")
			c.log.Warn("dropping fact for deleted post",
				logger.Component("delivery"), logger.PostID(fact.PostID))
			return queue.Drop
		}
		c.recordFailure(ctx, fact, "fetch post: "+err.Error())
		return queue.Drop
	}

	follower, err := c.users.FindByID(ctx, fact.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.recordFailure(ctx, fact, "user not found")
			c.log.Warn("dropping fact for missing user",
				logger.Component("delivery"), logger.UserID(fact.UserID))
			return queue.Drop
		}
		c.recordFailure(ctx, fact, "fetch user: "+err.Error())
		return queue.Drop
	}

	subject, body, err := renderNewPostEmail(post, follower, c.baseURL)
	if err != nil {
		c.recordFailure(ctx, fact, "render: "+err.Error())
		return queue.Drop
	}

	err = c.sender.Send(ctx, mailer.Message{
		To:       follower.Email,
		ToName:   follower.FullName(),
		Subject:  subject,
		BodyHTML: body,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrInvalidRecipient) ||
			errors.Is(err, mailer.ErrEmptySubject) ||
			errors.Is(err, mailer.ErrEmptyBody) {
			// Redelivery cannot fix an undeliverable message.
			c.recordFailure(ctx, fact, err.Error())
			return queue.Drop
		}
		// An explicit transport rejection is the one failure worth
		// retrying; the broker redelivers after the nack.
		c.recordFailure(ctx, fact, err.Error())
		c.log.Error("delivery failed, requeueing",
			logger.Component("delivery"),
			logger.PostID(fact.PostID),
			logger.UserID(fact.UserID),
			logger.Error(err))
		return queue.Requeue
	}

	now := time.Now().UTC()
	c.record(ctx, &model.DeliveryAttempt{
		PostID: fact.PostID,
		UserID: fact.UserID,
		Status: model.AttemptStatusSent,
		SentAt: &now,
	})
	c.log.Info("delivered follower notification",
		logger.Component("delivery"),
		logger.PostID(fact.PostID),
		logger.UserID(fact.UserID),
		slog.String("to", follower.Email))
	return queue.Ack
}

func (c *Consumer) recordFailure(ctx context.Context, fact queue.Fact, reason string) {
	c.record(ctx, &model.DeliveryAttempt{
		PostID:       fact.PostID,
		UserID:       fact.UserID,
		Status:       model.AttemptStatusFailed,
		ErrorMessage: reason,
	})
}

// record appends one audit row. The audit trail is best-effort: a
// write failure must not change the message outcome.
func (c *Consumer) record(ctx context.Context, attempt *model.DeliveryAttempt) {
	if err := c.attempts.Create(ctx, attempt); err != nil {
		c.log.Error("failed to record delivery attempt",
			logger.Component("delivery"),
			logger.PostID(attempt.PostID),
			logger.UserID(attempt.UserID),
			logger.Error(err))
	}
}
