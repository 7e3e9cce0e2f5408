// Package comment provides use cases for commenting on articles, including
// one-level reply threads and the comment deletion cascade.
package comment

import "errors"

// Sentinel errors for comment use case operations.
var (
	// ErrCommentNotFound indicates that the requested comment was not found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrArticleNotFound indicates the comment's article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrParentNotFound indicates the reply's parent comment does not exist
	// on the given article.
	ErrParentNotFound = errors.New("parent comment not found")

	// ErrNestedReply indicates an attempt to reply to a reply. Threads are
	// one level deep.
	ErrNestedReply = errors.New("replies to replies are not supported")

	// ErrNotCommentAuthor indicates that the acting user does not own the
	// comment.
	ErrNotCommentAuthor = errors.New("not the comment author")

	// ErrInvalidCommentID indicates that the provided comment ID is invalid.
	ErrInvalidCommentID = errors.New("invalid comment ID")
)
