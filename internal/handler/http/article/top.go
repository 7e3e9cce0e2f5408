package article

import (
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	artUC "devflow/internal/usecase/article"
	"devflow/internal/usecase/relation"
)

// TopHandler serves the ranked feed, ordered by like count within a
// created-at window.
type TopHandler struct {
	Svc           *artUC.Service
	Relations     *relation.Oracle
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h TopHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	span := r.PathValue("timeSpan")
	viewerID := auth.ViewerID(ctx)

	result, err := h.Svc.TopFeed(ctx, span, params)
	if err != nil {
		respondError(w, err)
		return
	}

	rel, err := h.Relations.ForArticles(ctx, viewerID, result.Articles)
	if err != nil {
		logger.Error("failed to resolve article relations",
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, feedResponse{
		Articles:           toDTOs(result.Articles, rel, viewerID != nil),
		LastArticleReached: result.LastReached,
	})
}
