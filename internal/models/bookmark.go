// Package models contains data structures for the application's domain models.
package models

import "time"

// Bookmark records that a user saved a tweet. The tweet ID is deliberately
// not foreign-key constrained: a bookmark may outlive the tweet it points
// at, matching the platform's original behavior.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_pair" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_bookmark_pair" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
}
