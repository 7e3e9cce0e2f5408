package follow

import (
	"context"
	"fmt"

	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// Service provides the follow graph use cases for users and tags. Follow and
// unfollow are idempotent the same way likes are: duplicates and absent edges
// are no-op successes.
type Service struct {
	Follows repository.FollowRepository
	Tags    repository.TagRepository
	Users   repository.UserRepository
}

// FollowUser makes followerID follow userID.
// Returns ErrSelfFollow or ErrUserNotFound. The bool reports whether a new
// edge was created.
func (s *Service) FollowUser(ctx context.Context, userID, followerID int64) (bool, error) {
	if userID == followerID {
		return false, ErrSelfFollow
	}
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return false, ErrUserNotFound
	}

	created, err := s.Follows.Follow(ctx, userID, followerID)
	if err != nil {
		return false, fmt.Errorf("follow user: %w", err)
	}
	return created, nil
}

// UnfollowUser removes the follow edge. The bool reports whether an edge was
// actually removed.
func (s *Service) UnfollowUser(ctx context.Context, userID, followerID int64) (bool, error) {
	if userID == followerID {
		return false, ErrSelfFollow
	}
	removed, err := s.Follows.Unfollow(ctx, userID, followerID)
	if err != nil {
		return false, fmt.Errorf("unfollow user: %w", err)
	}
	return removed, nil
}

// FollowTag makes the user follow a tag. The tag must already exist; tag rows
// are created by article publication, not by followers.
// Returns ErrTagNotFound.
func (s *Service) FollowTag(ctx context.Context, name string, userID int64) (bool, error) {
	normalized := entity.NormalizeTag(name)
	if normalized == "" {
		return false, ErrTagNotFound
	}
	tag, err := s.Tags.Get(ctx, normalized)
	if err != nil {
		return false, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return false, ErrTagNotFound
	}

	created, err := s.Tags.Follow(ctx, normalized, userID)
	if err != nil {
		return false, fmt.Errorf("follow tag: %w", err)
	}
	return created, nil
}

// UnfollowTag removes the user's tag follow. When the last follower of an
// otherwise unreferenced tag leaves, the tag row is reclaimed.
func (s *Service) UnfollowTag(ctx context.Context, name string, userID int64) (bool, error) {
	normalized := entity.NormalizeTag(name)
	if normalized == "" {
		return false, ErrTagNotFound
	}
	removed, err := s.Tags.Unfollow(ctx, normalized, userID)
	if err != nil {
		return false, fmt.Errorf("unfollow tag: %w", err)
	}
	return removed, nil
}
