package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"echo/internal/models"
	"echo/internal/observability"
	"echo/internal/repository"
)

// TweetService provides tweet, feed, like and comment business logic.
type TweetService struct {
	tweetRepo  repository.TweetRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// CreateTweetInput carries the fields accepted when posting a tweet.
type CreateTweetInput struct {
	UserID uint
	Body   string
}

// AddCommentInput carries the fields accepted when replying to a tweet.
type AddCommentInput struct {
	UserID  uint
	TweetID uint
	Body    string
}

const maxTweetLength = 280

// NewTweetService returns a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo, followRepo: followRepo}
}

// CreateTweet posts a new tweet for the author.
func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Tweet body cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxTweetLength {
		return nil, models.NewValidationError("Tweet body exceeds the maximum length")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{Body: body, UserID: in.UserID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	observability.TweetMutations.WithLabelValues("create").Inc()
	return s.tweetRepo.GetByID(ctx, tweet.ID, in.UserID)
}

// GetTweet returns the tweet with its author, like details and comments.
func (s *TweetService) GetTweet(ctx context.Context, tweetID, viewerID uint) (*models.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, tweetID, viewerID)
}

// ListFeed returns the global feed, newest first.
func (s *TweetService) ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	return s.tweetRepo.List(ctx, viewerID, limit, offset)
}

// ListFollowingFeed returns tweets authored by accounts the viewer follows,
// newest first. A viewer following nobody gets an empty feed.
func (s *TweetService) ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	authorIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByAuthorIDs(ctx, authorIDs, viewerID, limit, offset)
}

// ListUserTweets returns tweets authored by a single user, newest first.
func (s *TweetService) ListUserTweets(ctx context.Context, authorID, viewerID uint, limit, offset int) ([]models.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByAuthorIDs(ctx, []uint{authorID}, viewerID, limit, offset)
}

// DeleteTweet removes a tweet. Only the author may delete their own tweet.
func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, userID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID, userID)
	if err != nil {
		return err
	}
	if tweet.UserID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return err
	}
	observability.TweetMutations.WithLabelValues("delete").Inc()
	return nil
}

// ToggleLike likes the tweet, or removes the like if already present.
// Returns true when the like now exists, plus a notification message for the
// tweet's author.
func (s *TweetService) ToggleLike(ctx context.Context, userID, tweetID uint) (bool, string, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, userID); err != nil {
		return false, "", err
	}

	liked, err := s.tweetRepo.IsLiked(ctx, userID, tweetID)
	if err != nil {
		return false, "", err
	}

	if liked {
		if err := s.tweetRepo.Unlike(ctx, userID, tweetID); err != nil {
			return false, "", err
		}
		observability.TweetMutations.WithLabelValues("unlike").Inc()
		return false, "User disliked your tweet.", nil
	}
	if err := s.tweetRepo.Like(ctx, userID, tweetID); err != nil {
		return false, "", err
	}
	observability.TweetMutations.WithLabelValues("like").Inc()
	return true, "User liked your tweet.", nil
}

// AddComment attaches a reply to the tweet. Comments are append-only.
func (s *TweetService) AddComment(ctx context.Context, in AddCommentInput) (*models.Tweet, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Comment body cannot be empty")
	}

	if _, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{TweetID: in.TweetID, UserID: in.UserID, Body: body}
	if err := s.tweetRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	observability.TweetMutations.WithLabelValues("comment").Inc()
	return s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID)
}
