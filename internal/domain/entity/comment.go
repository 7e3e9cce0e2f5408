package entity

import "time"

// Comment represents a comment on an article, or a reply to another comment.
// Threading is one level deep: a reply carries the parent comment's ID, and
// replies to replies are not supported. ReplyCount mirrors the number of
// comments whose ParentCommentID references this comment.
type Comment struct {
	ID              int64
	ArticleID       int64
	AuthorID        int64
	ParentCommentID *int64
	Body            string
	Images          []string
	LikeCount       int64
	ReplyCount      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
