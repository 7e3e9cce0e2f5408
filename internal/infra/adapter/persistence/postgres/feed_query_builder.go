package postgres

import (
	"fmt"
	"strings"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/repository"
)

// FeedQueryBuilder assembles the WHERE clause for chronological feed queries.
// Conditions are combined with AND; placeholders are numbered from $1.
type FeedQueryBuilder struct{}

func NewFeedQueryBuilder() *FeedQueryBuilder {
	return &FeedQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause (possibly empty) and its args for
// the given filter and cursor. The article table alias is "a".
func (b *FeedQueryBuilder) BuildWhereClause(filter repository.FeedFilter, after *pagination.Keyset) (string, []any) {
	var conds []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.AuthorID != nil {
		conds = append(conds, "a.author_id = "+next(*filter.AuthorID))
	}
	if filter.Tag != nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM article_tags at WHERE at.article_id = a.id AND at.tag_name = "+next(*filter.Tag)+")")
	}

	if filter.Followed != repository.FollowedNone && filter.ViewerID != nil {
		viewer := next(*filter.ViewerID)
		followedUsers := "EXISTS (SELECT 1 FROM followers f WHERE f.user_id = a.author_id AND f.follower_id = " + viewer + ")"
		followedTags := "EXISTS (SELECT 1 FROM tag_followers tf INNER JOIN article_tags at2 ON at2.tag_name = tf.tag_name WHERE at2.article_id = a.id AND tf.user_id = " + viewer + ")"
		switch filter.Followed {
		case repository.FollowedUsers:
			conds = append(conds, followedUsers)
		case repository.FollowedTags:
			conds = append(conds, followedTags)
		case repository.FollowedAll:
			conds = append(conds, "("+followedUsers+" OR "+followedTags+")")
		}
	}

	if after != nil {
		conds = append(conds, "a.id < "+next(after.ID))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// BuildTopWhereClause returns the WHERE clause and args for the ranked feed:
// an optional created_at window plus the compound (like_count, id) keyset.
// likeCount ties are broken by id DESC, so the predicate is
// "strictly after (afterLikeCount, afterID) in (like_count DESC, id DESC)".
func (b *FeedQueryBuilder) BuildTopWhereClause(windowStart time.Time, after *pagination.Keyset) (string, []any) {
	var conds []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !windowStart.IsZero() {
		conds = append(conds, "a.created_at >= "+next(windowStart))
	}
	if after != nil {
		likePh := next(after.LikeCount)
		idPh := next(after.ID)
		conds = append(conds, fmt.Sprintf(
			"(a.like_count < %[1]s OR (a.like_count = %[1]s AND a.id < %[2]s))", likePh, idPh))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
