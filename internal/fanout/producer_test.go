package fanout_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/internal/fanout"
	"blogapp/internal/model"
	"blogapp/internal/queue"
	"blogapp/internal/repository"
	"blogapp/internal/storage"
)

// capturePublisher records published facts and can fail selectively.
type capturePublisher struct {
	published []queue.Fact
	failFor   map[int]error // keyed by follower user id
}

func (p *capturePublisher) Publish(_ context.Context, fact queue.Fact) error {
	if err, ok := p.failFor[fact.UserID]; ok {
		return err
	}
	p.published = append(p.published, fact)
	return nil
}

func TestProducer_EnqueueFanOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	seed := func(t *testing.T) (repository.FollowRepository, int, []int) {
		t.Helper()
		db := storage.NewTestDB(t)

		author := &model.User{FirstName: "A", LastName: "B", Email: "a@example.com",
			Status: model.UserStatusActive, IsActive: true}
		require.NoError(t, db.Create(author).Error)

		follows := repository.NewFollowRepository(db)
		var followerIDs []int
		for _, email := range []string{"f1@example.com", "f2@example.com", "f3@example.com"} {
			f := &model.User{FirstName: "F", LastName: "R", Email: email,
				Status: model.UserStatusActive, IsActive: true}
			require.NoError(t, db.Create(f).Error)
			require.NoError(t, follows.Create(ctx, f.ID, author.ID))
			followerIDs = append(followerIDs, f.ID)
		}
		return follows, author.ID, followerIDs
	}

	t.Run("one fact per follower", func(t *testing.T) {
		t.Parallel()

		follows, authorID, followerIDs := seed(t)
		pub := &capturePublisher{}
		producer := fanout.NewProducer(follows, pub, log)

		n, err := producer.EnqueueFanOut(ctx, 42, authorID)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		want := make([]queue.Fact, 0, len(followerIDs))
		for _, id := range followerIDs {
			want = append(want, queue.Fact{PostID: 42, UserID: id})
		}
		assert.ElementsMatch(t, want, pub.published)
	})

	t.Run("publish failure skips that follower only", func(t *testing.T) {
		t.Parallel()

		follows, authorID, followerIDs := seed(t)
		pub := &capturePublisher{failFor: map[int]error{
			followerIDs[1]: errors.New("broker unavailable"),
		}}
		producer := fanout.NewProducer(follows, pub, log)

		n, err := producer.EnqueueFanOut(ctx, 42, authorID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, pub.published, 2)
		for _, fact := range pub.published {
			assert.NotEqual(t, followerIDs[1], fact.UserID)
		}
	})

	t.Run("author with no followers publishes nothing", func(t *testing.T) {
		t.Parallel()

		db := storage.NewTestDB(t)
		author := &model.User{FirstName: "A", LastName: "B", Email: "solo@example.com",
			Status: model.UserStatusActive, IsActive: true}
		require.NoError(t, db.Create(author).Error)

		pub := &capturePublisher{}
		producer := fanout.NewProducer(repository.NewFollowRepository(db), pub, log)

		n, err := producer.EnqueueFanOut(ctx, 42, author.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, pub.published)
	})
}
