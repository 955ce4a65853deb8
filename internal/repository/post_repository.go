package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blogapp/internal/model"
)

// PostRepository exposes the post reads and admin state changes that
// trigger notifications.
type PostRepository interface {
	// FindByID loads a post with its author preloaded.
	FindByID(ctx context.Context, id int) (*model.Post, error)
	// SetDraft publishes (false) or unpublishes (true) a post.
	SetDraft(ctx context.Context, id int, draft bool) error
	Delete(ctx context.Context, id int) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) FindByID(ctx context.Context, id int) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SetDraft(ctx context.Context, id int, draft bool) error {
	res := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]any{
		"is_draft":   draft,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
