package model

import "time"

// Post is a blog entry. IsDraft is true until an admin approves it.
type Post struct {
	ID         int    `gorm:"primaryKey"`
	UserID     int    `gorm:"not null;index"`
	User       *User  `gorm:"foreignKey:UserID"`
	CategoryID int    `gorm:"not null;index"`
	Title      string `gorm:"size:255;not null"`
	Content    string `gorm:"type:text;not null"`
	IsDraft    bool   `gorm:"not null;default:true"`
	ViewCount  int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (Post) TableName() string { return "posts" }

// Category groups posts by topic.
type Category struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }
