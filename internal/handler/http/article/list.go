package article

import (
	"log/slog"
	"net/http"
	"strconv"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/repository"
	artUC "devflow/internal/usecase/article"
	"devflow/internal/usecase/relation"
)

// ListHandler serves the chronological article feed with optional authorId,
// tag, and followedTarget filters.
type ListHandler struct {
	Svc           *artUC.Service
	Relations     *relation.Oracle
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	in := artUC.FeedInput{
		ViewerID: auth.ViewerID(ctx),
		Followed: repository.FollowedTarget(r.URL.Query().Get("followedTarget")),
		Page:     params,
	}
	if authorStr := r.URL.Query().Get("authorId"); authorStr != "" {
		authorID, err := strconv.ParseInt(authorStr, 10, 64)
		if err != nil || authorID <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errInvalidAuthorID)
			return
		}
		in.AuthorID = &authorID
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		in.Tag = &tag
	}

	result, err := h.Svc.Feed(ctx, in)
	if err != nil {
		logger.Error("failed to list articles",
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	rel, err := h.Relations.ForArticles(ctx, in.ViewerID, result.Articles)
	if err != nil {
		logger.Error("failed to resolve article relations",
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, feedResponse{
		Articles:           toDTOs(result.Articles, rel, in.ViewerID != nil),
		LastArticleReached: result.LastReached,
	})
}
