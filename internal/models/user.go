// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the Echo application.
// Followers, following and bookmarks are stored in relation tables and
// loaded on demand rather than embedded in the user row.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Username        string         `gorm:"unique;not null" json:"username"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	Bio             string         `gorm:"size:160" json:"bio"`
	ProfileImageURL string         `json:"profileImageUrl"`
	BannerURL       string         `json:"bannerUrl"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// FollowerIDs and FollowingIDs are computed from the follows table;
	// populated by the repository on profile reads.
	FollowerIDs  []uint `gorm:"-" json:"followers"`
	FollowingIDs []uint `gorm:"-" json:"following"`
	// BookmarkIDs lists tweet IDs the user has bookmarked.
	BookmarkIDs []uint `gorm:"-" json:"bookmarks"`
}

// PublicProfile is the author projection joined onto tweets in feed reads.
type PublicProfile struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profileImageUrl"`
	BannerURL       string `json:"bannerUrl"`
}

// Public returns the limited projection of the user exposed on tweet joins.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		BannerURL:       u.BannerURL,
	}
}
