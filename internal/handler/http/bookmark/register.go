package bookmark

import (
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	bookmarkUC "devflow/internal/usecase/bookmark"
)

// Register registers the bookmark HTTP handlers with the given mux. All
// bookmark endpoints are viewer-scoped and require authentication.
func Register(mux *http.ServeMux, svc *bookmarkUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST /articles/{articleId}/save", auth.Required(SaveHandler{Svc: svc, Logger: logger}))
	mux.Handle("DELETE /articles/{articleId}/unsave", auth.Required(UnsaveHandler{Svc: svc, Logger: logger}))
	mux.Handle("GET /bookmarks", auth.Required(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
}
