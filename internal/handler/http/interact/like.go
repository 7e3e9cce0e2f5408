// Package interact provides HTTP handlers for like and unlike operations on
// articles and comments.
package interact

import (
	"errors"
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	intUC "devflow/internal/usecase/interaction"
)

// LikeHandler records a like on an article or comment. Liking something
// already liked is a no-op success.
type LikeHandler struct {
	Svc    *intUC.Service
	Logger *slog.Logger
}

func (h LikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetType := r.PathValue("targetType")
	targetID, err := pathutil.ID(r, "targetId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidTargetID)
		return
	}

	created, err := h.Svc.Like(ctx, auth.MustViewerID(ctx), targetType, targetID)
	if err != nil {
		respondError(w, err)
		return
	}

	if created {
		metrics.RecordLike(targetType, true)
		logging.WithRequestID(ctx, h.Logger).Info("like recorded",
			slog.String("target_type", targetType), slog.Int64("target_id", targetID))
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"created": created})
}

// UnlikeHandler removes a like. Unliking something not liked is a no-op
// success.
type UnlikeHandler struct {
	Svc    *intUC.Service
	Logger *slog.Logger
}

func (h UnlikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetType := r.PathValue("targetType")
	targetID, err := pathutil.ID(r, "targetId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidTargetID)
		return
	}

	removed, err := h.Svc.Unlike(ctx, auth.MustViewerID(ctx), targetType, targetID)
	if err != nil {
		respondError(w, err)
		return
	}

	if removed {
		metrics.RecordLike(targetType, false)
		logging.WithRequestID(ctx, h.Logger).Info("like removed",
			slog.String("target_type", targetType), slog.Int64("target_id", targetID))
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

var errInvalidTargetID = errors.New("invalid path parameter: targetId must be a positive integer")

// respondError maps interaction use case errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, intUC.ErrTargetNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, intUC.ErrInvalidTargetType):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
