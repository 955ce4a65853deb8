package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blogapp/internal/model"
)

// UserRepository exposes the account reads and status transitions the
// notification core depends on.
type UserRepository interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
	// UpdateStatus applies an admin-driven status transition. IsActive
	// and SuspendedAt are derived from the new status in the same
	// operation: Suspended stamps SuspendedAt, every other status
	// clears it.
	UpdateStatus(ctx context.Context, id int, status model.UserStatus) error
	// ListSuspendedBefore returns users whose suspension started at or
	// before the cutoff.
	ListSuspendedBefore(ctx context.Context, cutoff time.Time) ([]model.User, error)
	// Reactivate flips the given users back to active in one batch
	// statement, clearing SuspendedAt.
	Reactivate(ctx context.Context, ids []int) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int, status model.UserStatus) error {
	updates := map[string]any{
		"status":    status,
		"is_active": status == model.UserStatusActive,
	}
	if status == model.UserStatusSuspended {
		updates["suspended_at"] = time.Now().UTC()
	} else {
		updates["suspended_at"] = nil
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) ListSuspendedBefore(ctx context.Context, cutoff time.Time) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("status = ? AND suspended_at IS NOT NULL AND suspended_at <= ?", model.UserStatusSuspended, cutoff).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Reactivate(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":       model.UserStatusActive,
			"is_active":    true,
			"suspended_at": nil,
		}).Error
}
