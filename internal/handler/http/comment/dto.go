// Package comment provides HTTP handlers for comment endpoints: reading an
// article's comment page, posting comments and replies, and deleting them.
package comment

import (
	"errors"
	"net/http"
	"time"

	"devflow/internal/handler/http/respond"
	"devflow/internal/repository"
	cmtUC "devflow/internal/usecase/comment"
	"devflow/internal/usecase/relation"
)

// DTO represents the JSON structure for comment data transfer. The relation
// flags are omitted for anonymous requests.
type DTO struct {
	ID               int64     `json:"id"`
	ArticleID        int64     `json:"articleId"`
	ParentCommentID  *int64    `json:"parentCommentId,omitempty"`
	Body             string    `json:"body"`
	Images           []string  `json:"images,omitempty"`
	LikeCount        int64     `json:"likeCount"`
	ReplyCount       int64     `json:"replyCount"`
	AuthorID         int64     `json:"authorId"`
	AuthorUsername   string    `json:"authorUsername"`
	AuthorProfilePic string    `json:"authorProfilePic,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	IsLoggedInUserLiked     *bool `json:"isLoggedInUserLiked,omitempty"`
	IsLoggedInUserFollowing *bool `json:"isLoggedInUserFollowing,omitempty"`
}

// pageResponse is the envelope for one comment page.
type pageResponse struct {
	Comments           []DTO `json:"comments"`
	LastCommentReached bool  `json:"lastCommentReached"`
}

func toDTO(c repository.CommentWithAuthor, rel *relation.CommentRelations, authed bool) DTO {
	d := DTO{
		ID:               c.Comment.ID,
		ArticleID:        c.Comment.ArticleID,
		ParentCommentID:  c.Comment.ParentCommentID,
		Body:             c.Comment.Body,
		Images:           c.Comment.Images,
		LikeCount:        c.Comment.LikeCount,
		ReplyCount:       c.Comment.ReplyCount,
		AuthorID:         c.Comment.AuthorID,
		AuthorUsername:   c.AuthorUsername,
		AuthorProfilePic: c.AuthorProfilePic,
		CreatedAt:        c.Comment.CreatedAt,
		UpdatedAt:        c.Comment.UpdatedAt,
	}
	if authed {
		liked := rel.Liked[c.Comment.ID]
		following := rel.FollowingAuthor[c.Comment.AuthorID]
		d.IsLoggedInUserLiked = &liked
		d.IsLoggedInUserFollowing = &following
	}
	return d
}

var (
	errInvalidArticleID = errors.New("invalid path parameter: articleId must be a positive integer")
	errInvalidParentID  = errors.New("invalid query parameter: parentCommentId must be a positive integer")
)

// respondError maps comment use case errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cmtUC.ErrCommentNotFound),
		errors.Is(err, cmtUC.ErrArticleNotFound),
		errors.Is(err, cmtUC.ErrParentNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, cmtUC.ErrNotCommentAuthor):
		respond.SafeError(w, http.StatusForbidden, err)
	case errors.Is(err, cmtUC.ErrNestedReply), errors.Is(err, cmtUC.ErrInvalidCommentID):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
