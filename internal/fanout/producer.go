// Package fanout translates one post approval into one queue message
// per follower of the author.
package fanout

import (
	"context"
	"fmt"
	"log/slog"

	"blogapp/internal/logger"
	"blogapp/internal/queue"
	"blogapp/internal/repository"
)

// Publisher is the slice of the queue client the producer depends on.
type Publisher interface {
	Publish(ctx context.Context, fact queue.Fact) error
}

// Producer resolves an author's follower set and publishes one
// FanOutFact per follower. The follower list is resolved once at
// fan-out time and never cached.
type Producer struct {
	follows repository.FollowRepository
	pub     Publisher
	log     *slog.Logger
}

// NewProducer constructs a Producer.
func NewProducer(follows repository.FollowRepository, pub Publisher, log *slog.Logger) *Producer {
	return &Producer{follows: follows, pub: pub, log: log}
}

// EnqueueFanOut publishes one fact per current follower of authorID.
// A single publish failure is logged and skipped — the remaining
// followers still get their message, and the lost one is not retried.
// It returns the number of facts actually published.
func (p *Producer) EnqueueFanOut(ctx context.Context, postID, authorID int) (int, error) {
	followerIDs, err := p.follows.ListFollowerIDs(ctx, authorID)
	if err != nil {
		return 0, fmt.Errorf("fanout: list followers of user %d: %w", authorID, err)
	}

	published := 0
	for _, followerID := range followerIDs {
		fact := queue.Fact{PostID: postID, UserID: followerID}
		if err := p.pub.Publish(ctx, fact); err != nil {
			p.log.Error("failed to publish fan-out fact",
				logger.Component("fanout"),
				logger.PostID(postID),
				logger.UserID(followerID),
				logger.Error(err))
			continue
		}
		published++
	}

	p.log.Info("fan-out complete",
		logger.Component("fanout"),
		logger.PostID(postID),
		slog.Int("followers", len(followerIDs)),
		slog.Int("published", published))
	return published, nil
}
