package repository

import (
	"context"

	"devflow/internal/domain/entity"
)

type LikeRepository interface {
	// Create inserts the like and increments the target's like_count in one
	// transaction. A unique-constraint conflict on (user, target, type) is
	// not an error: Create returns created=false and leaves the counter
	// untouched, which makes liking idempotent.
	Create(ctx context.Context, like *entity.Like) (created bool, err error)
	// Delete removes the like and decrements the target's like_count in one
	// transaction. Deleting an absent like returns deleted=false, nil.
	Delete(ctx context.Context, userID, targetID int64, target entity.LikeTarget) (deleted bool, err error)
	// LikedSet reports which of targetIDs the user has liked, in a single
	// batched query.
	LikedSet(ctx context.Context, userID int64, targetIDs []int64, target entity.LikeTarget) (map[int64]bool, error)
}
