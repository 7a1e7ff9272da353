// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"echo/internal/cache"
	"echo/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ListOthers(ctx context.Context, userID uint, limit int) ([]models.User, error)
	LoadGraph(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username is already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// ListOthers returns up to limit users other than userID who userID does not
// already follow, newest accounts first. Backs the "who to follow" panel.
func (r *userRepository) ListOthers(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id <> ?", userID).
		Where("id NOT IN (?)",
			r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// LoadGraph populates the computed follower, following and bookmark ID lists
// on the user from their relation tables.
func (r *userRepository) LoadGraph(ctx context.Context, user *models.User) error {
	user.FollowerIDs = []uint{}
	user.FollowingIDs = []uint{}
	user.BookmarkIDs = []uint{}

	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", user.ID).
		Order("created_at ASC").
		Pluck("follower_id", &user.FollowerIDs).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", user.ID).
		Order("created_at ASC").
		Pluck("followee_id", &user.FollowingIDs).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Pluck("tweet_id", &user.BookmarkIDs).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
