package bookmark

import (
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	bookmarkUC "devflow/internal/usecase/bookmark"
)

// SaveHandler bookmarks an article for the viewer. Saving an already-saved
// article is a no-op success.
type SaveHandler struct {
	Svc    *bookmarkUC.Service
	Logger *slog.Logger
}

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	articleID, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidArticleID)
		return
	}
	userID := auth.MustViewerID(ctx)

	created, err := h.Svc.Save(ctx, userID, articleID)
	if err != nil {
		logger.Error("failed to save article",
			slog.Int64("article_id", articleID),
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"created": created})
}

// UnsaveHandler removes the viewer's bookmark. Removing an absent bookmark
// is a no-op success.
type UnsaveHandler struct {
	Svc    *bookmarkUC.Service
	Logger *slog.Logger
}

func (h UnsaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	articleID, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidArticleID)
		return
	}
	userID := auth.MustViewerID(ctx)

	removed, err := h.Svc.Unsave(ctx, userID, articleID)
	if err != nil {
		logger.Error("failed to unsave article",
			slog.Int64("article_id", articleID),
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
