package article

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	artUC "devflow/internal/usecase/article"
)

// UpdateHandler edits an article. Absent request fields leave the stored
// values untouched; only the author may edit.
type UpdateHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, artUC.ErrInvalidArticleID)
		return
	}

	var req struct {
		Title   *string   `json:"title"`
		Summary *string   `json:"summary"`
		Body    *string   `json:"body"`
		Tags    *[]string `json:"tags"`
		Images  *[]string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Update(ctx, artUC.UpdateInput{
		ID:      id,
		ActorID: auth.MustViewerID(ctx),
		Title:   req.Title,
		Summary: req.Summary,
		Body:    req.Body,
		Tags:    req.Tags,
		Images:  req.Images,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("article updated",
		slog.Int64("article_id", art.ID),
		slog.Int64("author_id", art.AuthorID))

	respond.JSON(w, http.StatusOK, map[string]any{
		"id":   art.ID,
		"slug": art.Slug,
	})
}
