// Package bookmark exposes the saved-article endpoints: saving, unsaving,
// and listing the viewer's bookmarks with title search and tag filtering.
package bookmark

import (
	"errors"
	"net/http"
	"time"

	"devflow/internal/domain/entity"
	"devflow/internal/handler/http/respond"
	bookmarkUC "devflow/internal/usecase/bookmark"
)

// DTO is the JSON shape of one bookmark. Title and tags are the snapshot
// taken at save time, not the article's current values.
type DTO struct {
	ID           int64     `json:"id"`
	ArticleID    int64     `json:"articleId"`
	ArticleTitle string    `json:"articleTitle"`
	Tags         []string  `json:"tags"`
	SavedAt      time.Time `json:"savedAt"`
}

type pageResponse struct {
	Bookmarks           []DTO `json:"bookmarks"`
	LastBookmarkReached bool  `json:"lastBookmarkReached"`
}

func toDTO(b *entity.SavedArticle) DTO {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return DTO{
		ID:           b.ID,
		ArticleID:    b.ArticleID,
		ArticleTitle: b.ArticleTitle,
		Tags:         tags,
		SavedAt:      b.CreatedAt,
	}
}

func toDTOs(bookmarks []*entity.SavedArticle) []DTO {
	out := make([]DTO, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = toDTO(b)
	}
	return out
}

var errInvalidArticleID = errors.New("invalid path parameter: articleId must be a positive integer")

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookmarkUC.ErrArticleNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, errInvalidArticleID):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
