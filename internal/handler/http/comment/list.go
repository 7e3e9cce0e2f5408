package comment

import (
	"log/slog"
	"net/http"
	"strconv"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	cmtUC "devflow/internal/usecase/comment"
	"devflow/internal/usecase/relation"
)

// ListHandler serves one comment page for an article. Top-level comments
// read newest-first; passing parentCommentId switches to that thread's
// replies, oldest-first.
type ListHandler struct {
	Svc           *cmtUC.Service
	Relations     *relation.Oracle
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	articleID, err := pathutil.ID(r, "articleId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidArticleID)
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	in := cmtUC.ListInput{ArticleID: articleID, Page: params}
	if parentStr := r.URL.Query().Get("parentCommentId"); parentStr != "" {
		parentID, err := strconv.ParseInt(parentStr, 10, 64)
		if err != nil || parentID <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errInvalidParentID)
			return
		}
		in.ParentCommentID = &parentID
	}

	result, err := h.Svc.List(ctx, in)
	if err != nil {
		respondError(w, err)
		return
	}

	viewerID := auth.ViewerID(ctx)
	rel, err := h.Relations.ForComments(ctx, viewerID, result.Comments)
	if err != nil {
		logger.Error("failed to resolve comment relations",
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, len(result.Comments))
	for i, c := range result.Comments {
		out[i] = toDTO(c, rel, viewerID != nil)
	}
	respond.JSON(w, http.StatusOK, pageResponse{
		Comments:           out,
		LastCommentReached: result.LastReached,
	})
}
