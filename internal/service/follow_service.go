package service

import (
	"context"
	"errors"

	"github.com/theandrewmo/warbler/internal/models"
	"github.com/theandrewmo/warbler/internal/observability"
	"github.com/theandrewmo/warbler/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow adds the follower -> followed edge. Following yourself is
// rejected, and an existing edge surfaces as DuplicateEdgeError rather
// than a silent no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrEdgeExists) {
			return models.NewDuplicateEdgeError("You are already following this user")
		}
		return err
	}

	observability.FollowsTotal.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge if present; removing an absent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		return err
	}
	observability.FollowsTotal.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether a follows b.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followedID)
}

// Followers returns the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Following returns the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// Counts returns follower/following counts for a user.
func (s *FollowService) Counts(ctx context.Context, userID uint) (repository.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}
