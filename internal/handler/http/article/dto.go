// Package article provides HTTP handlers for article endpoints: the
// chronological and ranked feeds, single-article reads, and the authorized
// publish, edit, and delete operations.
package article

import (
	"errors"
	"net/http"
	"time"

	"devflow/internal/handler/http/respond"
	"devflow/internal/repository"
	artUC "devflow/internal/usecase/article"
	"devflow/internal/usecase/relation"
)

// DTO represents the JSON structure for article data transfer. The three
// Is* flags carry the viewer's relation to the article and are omitted
// entirely for anonymous requests.
type DTO struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Summary          string    `json:"summary,omitempty"`
	Body             string    `json:"body,omitempty"`
	Tags             []string  `json:"tags"`
	Images           []string  `json:"images,omitempty"`
	LikeCount        int64     `json:"likeCount"`
	CommentCount     int64     `json:"commentCount"`
	AuthorID         int64     `json:"authorId"`
	AuthorUsername   string    `json:"authorUsername"`
	AuthorProfilePic string    `json:"authorProfilePic,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	IsLoggedInUserLiked     *bool `json:"isLoggedInUserLiked,omitempty"`
	IsLoggedInUserFollowing *bool `json:"isLoggedInUserFollowing,omitempty"`
	IsSavedArticle          *bool `json:"isSavedArticle,omitempty"`
}

// feedResponse is the envelope for one feed page.
type feedResponse struct {
	Articles           []DTO `json:"articles"`
	LastArticleReached bool  `json:"lastArticleReached"`
}

// toDTO converts a joined article row, attaching relation flags when a
// viewer is present.
func toDTO(a repository.ArticleWithAuthor, rel *relation.ArticleRelations, authed bool) DTO {
	d := DTO{
		ID:               a.Article.ID,
		Title:            a.Article.Title,
		Slug:             a.Article.Slug,
		Summary:          a.Article.Summary,
		Body:             a.Article.Body,
		Tags:             a.Article.Tags,
		Images:           a.Article.Images,
		LikeCount:        a.Article.LikeCount,
		CommentCount:     a.Article.CommentCount,
		AuthorID:         a.Article.AuthorID,
		AuthorUsername:   a.AuthorUsername,
		AuthorProfilePic: a.AuthorProfilePic,
		CreatedAt:        a.Article.CreatedAt,
		UpdatedAt:        a.Article.UpdatedAt,
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if authed {
		d.IsLoggedInUserLiked = flag(rel.Liked, a.Article.ID)
		d.IsLoggedInUserFollowing = flag(rel.FollowingAuthor, a.Article.AuthorID)
		d.IsSavedArticle = flag(rel.Saved, a.Article.ID)
	}
	return d
}

func toDTOs(articles []repository.ArticleWithAuthor, rel *relation.ArticleRelations, authed bool) []DTO {
	out := make([]DTO, len(articles))
	for i, a := range articles {
		out[i] = toDTO(a, rel, authed)
	}
	return out
}

func flag(m map[int64]bool, id int64) *bool {
	v := m[id]
	return &v
}

var errInvalidAuthorID = errors.New("invalid query parameter: authorId must be a positive integer")

// respondError maps article use case errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, artUC.ErrNotArticleAuthor):
		respond.SafeError(w, http.StatusForbidden, err)
	case errors.Is(err, artUC.ErrFollowedFilterRequiresAuth):
		respond.SafeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, artUC.ErrInvalidArticleID), errors.Is(err, artUC.ErrInvalidTimeSpan):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		// Validation errors get their structured 400 inside SafeError.
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
