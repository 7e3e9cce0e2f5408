package article

import (
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	artUC "devflow/internal/usecase/article"
	"devflow/internal/usecase/relation"
)

// Register registers the article HTTP handlers with the given mux.
// Read endpoints take an optional viewer for relation flags; write endpoints
// require authentication.
func Register(mux *http.ServeMux, svc *artUC.Service, rel *relation.Oracle, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", auth.Optional(ListHandler{
		Svc:           svc,
		Relations:     rel,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET /articles/top/{timeSpan}", auth.Optional(TopHandler{
		Svc:           svc,
		Relations:     rel,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET /articles/{slug}", auth.Optional(GetHandler{Svc: svc, Relations: rel, Logger: logger}))

	mux.Handle("POST /articles", auth.Required(CreateHandler{Svc: svc, Logger: logger}))
	mux.Handle("PATCH /articles/{articleId}", auth.Required(UpdateHandler{Svc: svc, Logger: logger}))
	mux.Handle("DELETE /articles/{articleId}", auth.Required(DeleteHandler{Svc: svc, Logger: logger}))
}
