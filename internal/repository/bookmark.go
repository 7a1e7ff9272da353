package repository

import (
	"context"

	"echo/internal/cache"
	"echo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines persistence operations for saved tweets.
type BookmarkRepository interface {
	IsBookmarked(ctx context.Context, userID, tweetID uint) (bool, error)
	Add(ctx context.Context, userID, tweetID uint) error
	Remove(ctx context.Context, userID, tweetID uint) error
	TweetIDs(ctx context.Context, userID uint) ([]uint, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository returns a new BookmarkRepository implementation.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) IsBookmarked(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *bookmarkRepository) Add(ctx context.Context, userID, tweetID uint) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Bookmark{UserID: userID, TweetID: tweetID}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *bookmarkRepository) Remove(ctx context.Context, userID, tweetID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Bookmark{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *bookmarkRepository) TweetIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("tweet_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
