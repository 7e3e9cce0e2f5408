// Package tag provides HTTP handlers for the tag directory and tag
// follow/unfollow operations.
package tag

import (
	"errors"
	"log/slog"
	"net/http"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	followUC "devflow/internal/usecase/follow"
	"devflow/internal/usecase/relation"
	tagUC "devflow/internal/usecase/tag"
)

// DTO represents the JSON structure for one tag directory entry.
type DTO struct {
	Name          string `json:"name"`
	FollowerCount int64  `json:"followerCount"`
	ArticleCount  int64  `json:"articleCount"`

	IsLoggedInUserFollowing *bool `json:"isLoggedInUserFollowing,omitempty"`
}

// listResponse is the envelope for one tag directory page.
type listResponse struct {
	Tags           []DTO `json:"tags"`
	LastTagReached bool  `json:"lastTagReached"`
}

// ListHandler serves the tag directory ordered by name. The cursor is the
// last tag name of the previous page, passed as continueAfter.
type ListHandler struct {
	Svc           *tagUC.Service
	Relations     *relation.Oracle
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

	in := tagUC.ListInput{Limit: params.Limit}
	if after := r.URL.Query().Get("continueAfter"); after != "" {
		in.AfterName = &after
	}

	result, err := h.Svc.List(ctx, in)
	if err != nil {
		logger.Error("failed to list tags", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	viewerID := auth.ViewerID(ctx)
	following, err := h.Relations.ForTags(ctx, viewerID, result.Tags)
	if err != nil {
		logger.Error("failed to resolve tag relations", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, len(result.Tags))
	for i, tag := range result.Tags {
		out[i] = DTO{
			Name:          tag.Name,
			FollowerCount: tag.FollowerCount,
			ArticleCount:  tag.ArticleCount,
		}
		if viewerID != nil {
			f := following[tag.Name]
			out[i].IsLoggedInUserFollowing = &f
		}
	}
	respond.JSON(w, http.StatusOK, listResponse{Tags: out, LastTagReached: result.LastReached})
}

// FollowHandler subscribes the viewer to a tag. The tag must already exist;
// tag rows come from article publication, not from followers.
type FollowHandler struct {
	Svc    *followUC.Service
	Logger *slog.Logger
}

func (h FollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	created, err := h.Svc.FollowTag(ctx, r.PathValue("tagName"), auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	if created {
		metrics.RecordFollow("tag", true)
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"created": created})
}

// UnfollowHandler removes the viewer's tag subscription. Dropping the last
// reference to an article-less tag deletes the tag row.
type UnfollowHandler struct {
	Svc    *followUC.Service
	Logger *slog.Logger
}

func (h UnfollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	removed, err := h.Svc.UnfollowTag(ctx, r.PathValue("tagName"), auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	if removed {
		metrics.RecordFollow("tag", false)
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// respondError maps follow use case errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, followUC.ErrTagNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Register registers the tag HTTP handlers with the given mux.
func Register(mux *http.ServeMux, listSvc *tagUC.Service, followSvc *followUC.Service, rel *relation.Oracle, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /tags", auth.Optional(ListHandler{
		Svc:           listSvc,
		Relations:     rel,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("POST /tags/{tagName}/follow", auth.Required(FollowHandler{Svc: followSvc, Logger: logger}))
	mux.Handle("DELETE /tags/{tagName}/unfollow", auth.Required(UnfollowHandler{Svc: followSvc, Logger: logger}))
}
