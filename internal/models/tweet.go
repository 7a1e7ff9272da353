// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Tweet represents a short text update in the Echo application. Deletion is
// permanent: the row is removed, not flagged.
type Tweet struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Body   string `gorm:"type:text;not null" json:"body"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this tweet (computed)
	Liked bool `gorm:"->" json:"liked"`
	// LikeUserIDs lists users who liked the tweet; populated on detail reads.
	LikeUserIDs []uint    `gorm:"-" json:"likes"`
	Comments    []Comment `gorm:"foreignKey:TweetID" json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Comment is an append-only reply attached to a tweet. No edit or delete
// operation is exposed for comments.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TweetID   uint      `gorm:"not null;index" json:"tweet_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
