package model

import "time"

// AttemptStatus is the terminal outcome of a single delivery attempt.
type AttemptStatus string

const (
	AttemptStatusSent   AttemptStatus = "Sent"
	AttemptStatusFailed AttemptStatus = "Failed"
)

// DeliveryAttempt is an append-only audit record of one consumer
// attempt to deliver a fan-out email. Rows are never updated: a
// redelivered message produces a new row per attempt.
type DeliveryAttempt struct {
	ID           int           `gorm:"primaryKey"`
	PostID       int           `gorm:"not null;index"`
	UserID       int           `gorm:"not null;index"`
	Status       AttemptStatus `gorm:"size:10;not null"`
	ErrorMessage string        `gorm:"type:text"`
	CreatedAt    time.Time
	SentAt       *time.Time
}

func (DeliveryAttempt) TableName() string { return "delivery_attempts" }
