package model

import "time"

// Follow is a follower edge: FollowerID follows FollowingID.
// The pair is unique, which is the only deduplication fan-out relies on.
type Follow struct {
	ID          int       `gorm:"primaryKey"`
	FollowerID  int       `gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	FollowingID int       `gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time
}

func (Follow) TableName() string { return "user_followers" }
