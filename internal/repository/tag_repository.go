package repository

import (
	"context"

	"devflow/internal/domain/entity"
)

type TagRepository interface {
	// ListPage retrieves one tag directory page ordered by tag_name ASC with
	// a keyset on afterName. fetch is limit+1.
	ListPage(ctx context.Context, afterName *string, fetch int) ([]*entity.Tag, error)
	// Get returns (nil, nil) if the tag does not exist.
	Get(ctx context.Context, name string) (*entity.Tag, error)
	// Follow creates the follow edge and increments follower_count in one
	// transaction. Duplicate follows return created=false.
	Follow(ctx context.Context, name string, userID int64) (created bool, err error)
	// Unfollow removes the edge and decrements follower_count, deleting the
	// tag row entirely when both follower_count and article_count reach zero.
	// The zero-reference check is the same one the article-deletion cascade
	// applies, so tags are reclaimed symmetrically from both paths.
	Unfollow(ctx context.Context, name string, userID int64) (removed bool, err error)
	// FollowingSet reports which of names the user follows, batched.
	FollowingSet(ctx context.Context, userID int64, names []string) (map[string]bool, error)
}
