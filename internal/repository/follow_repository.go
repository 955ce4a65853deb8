package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogapp/internal/model"
)

// FollowRepository exposes the follower-edge reads fan-out depends on.
type FollowRepository interface {
	// ListFollowerIDs returns the ids of everyone following the given
	// user. The result is resolved once at fan-out time and never
	// cached.
	ListFollowerIDs(ctx context.Context, followingID int) ([]int, error)
	Create(ctx context.Context, followerID, followingID int) error
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) ListFollowerIDs(ctx context.Context, followingID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", followingID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID int) error {
	f := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	// Duplicate follows are a no-op; the unique pair index is the only
	// dedup fan-out relies on.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}
