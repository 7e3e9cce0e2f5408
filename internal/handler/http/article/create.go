package article

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	artUC "devflow/internal/usecase/article"
)

// CreateHandler publishes a new article for the authenticated user.
type CreateHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req struct {
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		Body    string   `json:"body"`
		Tags    []string `json:"tags"`
		Images  []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Create(ctx, artUC.CreateInput{
		AuthorID: auth.MustViewerID(ctx),
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
		Tags:     req.Tags,
		Images:   req.Images,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	metrics.RecordArticlePublished()
	logger.Info("article published",
		slog.Int64("article_id", art.ID),
		slog.Int64("author_id", art.AuthorID),
		slog.String("slug", art.Slug))

	respond.JSON(w, http.StatusCreated, map[string]any{
		"id":   art.ID,
		"slug": art.Slug,
	})
}
