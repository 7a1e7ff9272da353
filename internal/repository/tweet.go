package repository

import (
	"context"
	"errors"

	"echo/internal/cache"
	"echo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TweetRepository defines persistence operations for tweets, comments and likes.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Tweet, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []uint, viewerID uint, limit, offset int) ([]models.Tweet, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, tweetID uint) (bool, error)
	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) error
	AddComment(ctx context.Context, comment *models.Comment) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// withDetails decorates a tweet query with the computed like count and the
// viewer's own like flag. Plain subqueries keep it portable across drivers.
func (r *tweetRepository) withDetails(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Select(`tweets.*,
			(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.tweet_id = tweets.id AND likes.user_id = ?) AS liked`,
			viewerID).
		Preload("User")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.withDetails(ctx, viewerID).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&tweet, "tweets.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}

	tweet.LikeUserIDs = []uint{}
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("tweet_id = ?", id).
		Order("created_at ASC").
		Pluck("user_id", &tweet.LikeUserIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

// List returns the global feed, newest first. A non-positive limit returns
// every tweet.
func (r *tweetRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	var tweets []models.Tweet
	q := r.withDetails(ctx, viewerID).Order("tweets.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) ListByAuthorIDs(ctx context.Context, authorIDs []uint, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	if len(authorIDs) == 0 {
		return tweets, nil
	}
	q := r.withDetails(ctx, viewerID).
		Where("tweets.user_id IN ?", authorIDs).
		Order("tweets.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tweet{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, id)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *tweetRepository) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the like row; the unique pair index plus DoNothing make a
// repeat like from a racing request a no-op.
func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, TweetID: tweetID}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

func (r *tweetRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, comment.TweetID)
	return nil
}
