package comment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	cmtUC "devflow/internal/usecase/comment"
)

// CreateHandler posts a comment, or a reply when parentCommentId is given.
type CreateHandler struct {
	Svc    *cmtUC.Service
	Logger *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	articleID, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidArticleID)
		return
	}

	var req struct {
		Body            string   `json:"body"`
		Images          []string `json:"images"`
		ParentCommentID *int64   `json:"parentCommentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.Svc.Create(ctx, cmtUC.CreateInput{
		ArticleID:       articleID,
		AuthorID:        auth.MustViewerID(ctx),
		ParentCommentID: req.ParentCommentID,
		Body:            req.Body,
		Images:          req.Images,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	metrics.RecordCommentPosted(c.IsReply())
	logger.Info("comment posted",
		slog.Int64("comment_id", c.ID),
		slog.Int64("article_id", c.ArticleID),
		slog.Bool("is_reply", c.IsReply()))

	respond.JSON(w, http.StatusCreated, map[string]any{"id": c.ID})
}
