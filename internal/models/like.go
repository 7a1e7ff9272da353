// Package models contains data structures for the application's domain models.
package models

import "time"

// Like records that a user liked a tweet. One row per (user, tweet) pair;
// unliking hard-deletes the row.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
}
