package repository

import "context"

type FollowRepository interface {
	// Follow creates the (userID, followerID) edge and adjusts both users'
	// denormalized counters in one transaction. A duplicate edge returns
	// created=false with the counters untouched.
	Follow(ctx context.Context, userID, followerID int64) (created bool, err error)
	// Unfollow removes the edge and decrements the counters. Removing an
	// absent edge returns removed=false, nil.
	Unfollow(ctx context.Context, userID, followerID int64) (removed bool, err error)
	// FollowingSet reports which of userIDs the follower follows, batched.
	FollowingSet(ctx context.Context, followerID int64, userIDs []int64) (map[int64]bool, error)
}
