package comment

import (
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	cmtUC "devflow/internal/usecase/comment"
	"devflow/internal/usecase/relation"
)

// Register registers the comment HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *cmtUC.Service, rel *relation.Oracle, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles/{articleId}/comments", auth.Optional(ListHandler{
		Svc:           svc,
		Relations:     rel,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("POST /articles/{articleId}/comments", auth.Required(CreateHandler{Svc: svc, Logger: logger}))
	mux.Handle("DELETE /comments/{commentId}", auth.Required(DeleteHandler{Svc: svc, Logger: logger}))
}
