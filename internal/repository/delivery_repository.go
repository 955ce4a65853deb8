package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapp/internal/model"
)

// DeliveryAttemptRepository appends to and reads the delivery audit
// trail. Attempts are never updated after creation.
type DeliveryAttemptRepository interface {
	Create(ctx context.Context, attempt *model.DeliveryAttempt) error
	List(ctx context.Context, offset, limit int) ([]model.DeliveryAttempt, error)
}

type deliveryAttemptRepository struct {
	db *gorm.DB
}

func NewDeliveryAttemptRepository(db *gorm.DB) DeliveryAttemptRepository {
	return &deliveryAttemptRepository{db: db}
}

func (r *deliveryAttemptRepository) Create(ctx context.Context, attempt *model.DeliveryAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *deliveryAttemptRepository) List(ctx context.Context, offset, limit int) ([]model.DeliveryAttempt, error) {
	var attempts []model.DeliveryAttempt
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
