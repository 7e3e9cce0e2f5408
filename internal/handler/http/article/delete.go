package article

import (
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	artUC "devflow/internal/usecase/article"
)

// DeleteHandler removes an article and everything hanging off it. Only the
// author may delete.
type DeleteHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, artUC.ErrInvalidArticleID)
		return
	}

	cascade, err := h.Svc.Delete(ctx, id, auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	metrics.RecordArticleCascade(cascade.CommentsDeleted, cascade.LikesDeleted, cascade.SavesDeleted)
	logger.Info("article deleted",
		slog.Int64("article_id", id),
		slog.Int64("comments_deleted", cascade.CommentsDeleted),
		slog.Int64("likes_deleted", cascade.LikesDeleted),
		slog.Int64("saves_deleted", cascade.SavesDeleted),
		slog.Any("tags_reclaimed", cascade.TagsReclaimed))

	w.WriteHeader(http.StatusNoContent)
}
