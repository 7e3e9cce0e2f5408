package repository

import (
	"context"

	"devflow/internal/domain/entity"
)

type SavedArticleRepository interface {
	// Save inserts the bookmark with its title and tag snapshot. A duplicate
	// (user, article) pair returns created=false.
	Save(ctx context.Context, saved *entity.SavedArticle) (created bool, err error)
	// Unsave removes the bookmark; removing an absent one returns false, nil.
	Unsave(ctx context.Context, userID, articleID int64) (removed bool, err error)
	// ListPage retrieves one bookmark page for the user, newest-first with a
	// keyset on afterID. search matches the snapshotted title, tag the
	// snapshotted tags; both filters avoid joining articles. fetch is limit+1.
	ListPage(ctx context.Context, userID int64, search, tag string, afterID *int64, fetch int) ([]*entity.SavedArticle, error)
	// SavedSet reports which of articleIDs the user has bookmarked, batched.
	SavedSet(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error)
}
