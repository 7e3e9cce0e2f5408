package bookmark

import (
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	bookmarkUC "devflow/internal/usecase/bookmark"
)

// ListHandler serves the viewer's bookmark page, newest-first, with optional
// search (snapshotted title substring) and tag filters.
type ListHandler struct {
	Svc           *bookmarkUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	in := bookmarkUC.ListInput{
		UserID: auth.MustViewerID(ctx),
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
		Page:   params,
	}

	result, err := h.Svc.List(ctx, in)
	if err != nil {
		logger.Error("failed to list bookmarks",
			slog.Int64("user_id", in.UserID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pageResponse{
		Bookmarks:           toDTOs(result.Bookmarks),
		LastBookmarkReached: result.LastReached,
	})
}
