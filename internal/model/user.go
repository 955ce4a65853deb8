package model

import "time"

// UserStatus is the moderation state of an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// Valid reports whether the status is one of the known states.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	}
	return false
}

// User is a platform account. Status and SuspendedAt move together:
// Suspended implies SuspendedAt is set, any other status implies it is
// null. The reactivation scheduler is the only writer of the
// Suspended -> Active transition.
type User struct {
	ID           int        `gorm:"primaryKey"`
	FirstName    string     `gorm:"size:100;not null"`
	LastName     string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Role         string     `gorm:"size:20;not null;default:user"`
	Status       UserStatus `gorm:"size:20;not null;default:active;index"`
	IsActive     bool       `gorm:"not null;default:true"`
	SuspendedAt  *time.Time `gorm:"index"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }

// FullName renders the display name used in outbound email.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
