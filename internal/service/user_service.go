// Package service contains the business logic layer of the application.
package service

import (
	"context"
	"strings"

	"echo/internal/models"
	"echo/internal/repository"
	"echo/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo     repository.UserRepository
	bookmarkRepo repository.BookmarkRepository
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// UpdateProfileInput carries the editable profile fields. Name and Username
// are required on every edit; the client submits the full form. Bio may be
// cleared via ClearBio, and empty image URLs leave the stored ones unchanged.
type UpdateProfileInput struct {
	UserID          uint
	Name            string
	Username        string
	Bio             string
	ClearBio        bool
	ProfileImageURL string
	BannerURL       string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, bookmarkRepo repository.BookmarkRepository) *UserService {
	return &UserService{userRepo: userRepo, bookmarkRepo: bookmarkRepo}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("An account with this email already exists")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.FollowerIDs = []uint{}
	user.FollowingIDs = []uint{}
	user.BookmarkIDs = []uint{}
	return user, nil
}

// Login verifies credentials and returns the account. Unknown email and wrong
// password produce the same error so the response does not leak which one failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	if err := s.userRepo.LoadGraph(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile returns the user with their follower, following and bookmark
// lists populated.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.LoadGraph(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the submitted profile edits after validation.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != user.ID {
			return nil, models.NewConflictError("Username is already taken")
		}
	}
	user.Name = in.Name
	user.Username = in.Username
	if in.ClearBio {
		user.Bio = ""
	} else if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = in.Bio
	}
	if in.ProfileImageURL != "" {
		user.ProfileImageURL = in.ProfileImageURL
	}
	if in.BannerURL != "" {
		user.BannerURL = in.BannerURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.userRepo.LoadGraph(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// OtherUsers returns suggested accounts the user does not yet follow.
func (s *UserService) OtherUsers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.userRepo.ListOthers(ctx, userID, 10)
}

// ToggleBookmark adds the tweet to the user's bookmarks, or removes it if
// already present. Returns true when the bookmark now exists.
func (s *UserService) ToggleBookmark(ctx context.Context, userID, tweetID uint) (bool, string, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, "", err
	}

	bookmarked, err := s.bookmarkRepo.IsBookmarked(ctx, userID, tweetID)
	if err != nil {
		return false, "", err
	}

	if bookmarked {
		if err := s.bookmarkRepo.Remove(ctx, userID, tweetID); err != nil {
			return false, "", err
		}
		return false, "Bookmark removed successfully.", nil
	}
	if err := s.bookmarkRepo.Add(ctx, userID, tweetID); err != nil {
		return false, "", err
	}
	return true, "Bookmark added successfully.", nil
}

// Bookmarks returns the tweet IDs the user has saved, oldest first.
func (s *UserService) Bookmarks(ctx context.Context, userID uint) ([]uint, error) {
	return s.bookmarkRepo.TweetIDs(ctx, userID)
}
