// Package repository defines the persistence interfaces for the domain
// entities, plus the cross-repository types shared by feed queries.
package repository

import (
	"context"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
)

// FollowedTarget restricts the chronological feed to things the viewer follows.
type FollowedTarget string

const (
	FollowedNone  FollowedTarget = ""
	FollowedUsers FollowedTarget = "users"
	FollowedTags  FollowedTarget = "tags"
	FollowedAll   FollowedTarget = "all"
)

// Valid reports whether the target is one of the accepted values.
func (t FollowedTarget) Valid() bool {
	switch t {
	case FollowedNone, FollowedUsers, FollowedTags, FollowedAll:
		return true
	}
	return false
}

// FeedFilter contains the optional filters for the chronological article feed.
// ViewerID must be set when Followed is not FollowedNone.
type FeedFilter struct {
	AuthorID *int64
	Tag      *string
	Followed FollowedTarget
	ViewerID *int64
}

// ArticleWithAuthor pairs an article with the author fields feed pages embed.
type ArticleWithAuthor struct {
	Article          *entity.Article
	AuthorUsername   string
	AuthorProfilePic string
}

// ArticleCascade reports what an article deletion removed, for logging and metrics.
type ArticleCascade struct {
	CommentsDeleted int64
	LikesDeleted    int64
	SavesDeleted    int64
	TagsReclaimed   []string
}

type ArticleRepository interface {
	// ListFeed retrieves one chronological feed page: up to fetch rows ordered
	// by id DESC, strictly after the cursor when one is given. Callers pass
	// fetch = limit+1 and apply pagination.Trim to the result.
	ListFeed(ctx context.Context, filter FeedFilter, after *pagination.Keyset, fetch int) ([]ArticleWithAuthor, error)
	// ListTop retrieves one ranked feed page ordered by (like_count DESC, id DESC)
	// with the compound keyset predicate, restricted to articles created at or
	// after windowStart (zero time means no window).
	ListTop(ctx context.Context, windowStart time.Time, after *pagination.Keyset, fetch int) ([]ArticleWithAuthor, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetBySlug returns (nil, nil) if no article has the slug.
	GetBySlug(ctx context.Context, slug string) (*ArticleWithAuthor, error)
	// Create inserts the article, its tag and image rows, bumps each tag's
	// article_count (creating tag rows on first use), and increments the
	// author's total_articles, all in one transaction. Sets article.ID.
	Create(ctx context.Context, article *entity.Article) error
	// Update rewrites the mutable fields and applies the tag diff: added tags
	// gain an article_count reference, removed tags lose one and are deleted
	// when both of their counters reach zero.
	Update(ctx context.Context, article *entity.Article, addedTags, removedTags []string) error
	// CollectImagePaths returns the article's own image paths plus those of
	// every comment under it. Callers delete the files before DeleteCascade
	// so a crash mid-sequence orphans rows, never files.
	CollectImagePaths(ctx context.Context, id int64) ([]string, error)
	// DeleteCascade removes the article and every dependent row (comments,
	// likes, saved articles, tag references, author counter) in one
	// transaction and reports what was removed.
	DeleteCascade(ctx context.Context, id int64) (*ArticleCascade, error)
}
