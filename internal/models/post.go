package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a feed post. Name and Avatar are the author's display metadata,
// denormalized from the token claims at creation time.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Likes     []Like         `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like records one user's like on a post. The composite unique index is the
// anchor for the atomic add-if-absent write: at most one row per (post, user).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Comment is a reply on a post, removable only by its own author.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"-"`
	UserID    uint           `gorm:"not null" json:"user"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"date"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
