package service

import (
	"context"
	"fmt"

	"echo/internal/models"
	"echo/internal/observability"
	"echo/internal/repository"
)

// GraphService provides follow and unfollow business logic over the social
// graph edge table.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{followRepo: followRepo, userRepo: userRepo}
}

// Follow makes follower follow followee. Both accounts must exist, the edge
// must not already be present, and following yourself is rejected.
func (s *GraphService) Follow(ctx context.Context, followerID, followeeID uint) (string, error) {
	if followerID == followeeID {
		observability.GraphMutations.WithLabelValues("follow", "rejected").Inc()
		return "", models.NewValidationError("You cannot follow yourself")
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return "", err
	}
	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return "", err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return "", err
	}
	if exists {
		observability.GraphMutations.WithLabelValues("follow", "rejected").Inc()
		return "", models.NewValidationError(fmt.Sprintf("You are already following %s", followee.Name))
	}

	if err := s.followRepo.Create(ctx, followerID, followeeID); err != nil {
		observability.GraphMutations.WithLabelValues("follow", "error").Inc()
		return "", err
	}

	observability.GraphMutations.WithLabelValues("follow", "ok").Inc()
	return fmt.Sprintf("%s has followed %s", follower.Name, followee.Name), nil
}

// Unfollow removes the follow edge. Unfollowing someone you do not follow is
// an error rather than a silent no-op.
func (s *GraphService) Unfollow(ctx context.Context, followerID, followeeID uint) (string, error) {
	if followerID == followeeID {
		observability.GraphMutations.WithLabelValues("unfollow", "rejected").Inc()
		return "", models.NewValidationError("You cannot unfollow yourself")
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return "", err
	}
	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return "", err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return "", err
	}
	if !exists {
		observability.GraphMutations.WithLabelValues("unfollow", "rejected").Inc()
		return "", models.NewValidationError(fmt.Sprintf("You are not following %s", followee.Name))
	}

	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		observability.GraphMutations.WithLabelValues("unfollow", "error").Inc()
		return "", err
	}

	observability.GraphMutations.WithLabelValues("unfollow", "ok").Inc()
	return fmt.Sprintf("%s has unfollowed %s", follower.Name, followee.Name), nil
}

// Followers returns the IDs of users following userID.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.FollowerIDs(ctx, userID)
}

// Following returns the IDs of users userID follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.FollowingIDs(ctx, userID)
}
