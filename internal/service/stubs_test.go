package service

import (
	"context"
	"errors"
	"testing"

	"echo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listOthersFn    func(context.Context, uint, int) ([]models.User, error)
	loadGraphFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) ListOthers(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	return s.listOthersFn(ctx, userID, limit)
}
func (s *userRepoStub) LoadGraph(ctx context.Context, user *models.User) error {
	return s.loadGraphFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "User"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listOthersFn:    func(_ context.Context, _ uint, _ int) ([]models.User, error) { return nil, nil },
		loadGraphFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	existsFn       func(context.Context, uint, uint) (bool, error)
	createFn       func(context.Context, uint, uint) error
	deleteFn       func(context.Context, uint, uint) error
	followerIDsFn  func(context.Context, uint) ([]uint, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn:       func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		followerIDsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn          func(context.Context, *models.Tweet) error
	getByIDFn         func(context.Context, uint, uint) (*models.Tweet, error)
	listFn            func(context.Context, uint, int, int) ([]models.Tweet, error)
	listByAuthorIDsFn func(context.Context, []uint, uint, int, int) ([]models.Tweet, error)
	deleteFn          func(context.Context, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
	addCommentFn      func(context.Context, *models.Comment) error
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *tweetRepoStub) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	return s.listFn(ctx, viewerID, limit, offset)
}
func (s *tweetRepoStub) ListByAuthorIDs(ctx context.Context, authorIDs []uint, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	return s.listByAuthorIDsFn(ctx, authorIDs, viewerID, limit, offset)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tweetRepoStub) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Like(ctx context.Context, userID, tweetID uint) error {
	return s.likeFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) Unlike(ctx context.Context, userID, tweetID uint) error {
	return s.unlikeFn(ctx, userID, tweetID)
}
func (s *tweetRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Tweet, error) {
			return &models.Tweet{ID: id}, nil
		},
		listFn: func(_ context.Context, _ uint, _, _ int) ([]models.Tweet, error) { return nil, nil },
		listByAuthorIDsFn: func(_ context.Context, _ []uint, _ uint, _, _ int) ([]models.Tweet, error) {
			return nil, nil
		},
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:       func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:     func(_ context.Context, _, _ uint) error { return nil },
		addCommentFn: func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// bookmarkRepoStub is a stub for repository.BookmarkRepository.
type bookmarkRepoStub struct {
	isBookmarkedFn func(context.Context, uint, uint) (bool, error)
	addFn          func(context.Context, uint, uint) error
	removeFn       func(context.Context, uint, uint) error
	tweetIDsFn     func(context.Context, uint) ([]uint, error)
}

func (s *bookmarkRepoStub) IsBookmarked(ctx context.Context, userID, tweetID uint) (bool, error) {
	return s.isBookmarkedFn(ctx, userID, tweetID)
}
func (s *bookmarkRepoStub) Add(ctx context.Context, userID, tweetID uint) error {
	return s.addFn(ctx, userID, tweetID)
}
func (s *bookmarkRepoStub) Remove(ctx context.Context, userID, tweetID uint) error {
	return s.removeFn(ctx, userID, tweetID)
}
func (s *bookmarkRepoStub) TweetIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.tweetIDsFn(ctx, userID)
}

func noopBookmarkRepo() *bookmarkRepoStub {
	return &bookmarkRepoStub{
		isBookmarkedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addFn:          func(_ context.Context, _, _ uint) error { return nil },
		removeFn:       func(_ context.Context, _, _ uint) error { return nil },
		tweetIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError carrying the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}
