package article

import (
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/repository"
	artUC "devflow/internal/usecase/article"
	"devflow/internal/usecase/relation"
)

// GetHandler serves a single article looked up by slug.
type GetHandler struct {
	Svc       *artUC.Service
	Relations *relation.Oracle
	Logger    *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)
	viewerID := auth.ViewerID(ctx)

	art, err := h.Svc.GetBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		respondError(w, err)
		return
	}

	rel, err := h.Relations.ForArticles(ctx, viewerID, []repository.ArticleWithAuthor{*art})
	if err != nil {
		logger.Error("failed to resolve article relations",
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]DTO{
		"article": toDTO(*art, rel, viewerID != nil),
	})
}
