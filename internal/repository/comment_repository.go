package repository

import (
	"context"

	"devflow/internal/domain/entity"
)

// CommentWithAuthor pairs a comment with the author fields comment pages embed.
type CommentWithAuthor struct {
	Comment          *entity.Comment
	AuthorUsername   string
	AuthorProfilePic string
}

// CommentCascade reports what a comment deletion removed.
type CommentCascade struct {
	RepliesDeleted int64
	LikesDeleted   int64
}

type CommentRepository interface {
	// ListPage retrieves one comment page for an article. With a nil
	// parentCommentID it returns top-level comments newest-first (id DESC,
	// id < afterID); with a parent it returns that thread's replies
	// oldest-first (id ASC, id > afterID). fetch is limit+1.
	ListPage(ctx context.Context, articleID int64, parentCommentID, afterID *int64, fetch int) ([]CommentWithAuthor, error)
	Get(ctx context.Context, id int64) (*entity.Comment, error)
	// Create inserts the comment and its image rows, increments the article's
	// comment_count, and, for replies, the parent's reply_count, in one
	// transaction. Sets comment.ID.
	Create(ctx context.Context, comment *entity.Comment) error
	// CollectImagePaths returns the comment's image paths plus those of its
	// direct replies.
	CollectImagePaths(ctx context.Context, id int64) ([]string, error)
	// DeleteCascade removes the comment and its direct replies (one level
	// only), their likes, and adjusts the article's comment_count by
	// 1 + replies and the parent's reply_count when the comment is itself a
	// reply, all in one transaction.
	DeleteCascade(ctx context.Context, id int64) (*CommentCascade, error)
}
