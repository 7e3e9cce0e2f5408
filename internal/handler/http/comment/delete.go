package comment

import (
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	cmtUC "devflow/internal/usecase/comment"
)

// DeleteHandler removes a comment and its direct replies. Only the author
// may delete.
type DeleteHandler struct {
	Svc    *cmtUC.Service
	Logger *slog.Logger
}

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ID(r, "commentId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, cmtUC.ErrInvalidCommentID)
		return
	}

	cascade, err := h.Svc.Delete(ctx, id, auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("comment deleted",
		slog.Int64("comment_id", id),
		slog.Int64("replies_deleted", cascade.RepliesDeleted),
		slog.Int64("likes_deleted", cascade.LikesDeleted))

	w.WriteHeader(http.StatusNoContent)
}
