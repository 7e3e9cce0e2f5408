// Package user provides HTTP handlers for account registration, public
// profiles, and user follow/unfollow operations.
package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/pathutil"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	followUC "devflow/internal/usecase/follow"
	userUC "devflow/internal/usecase/user"
)

// ProfileDTO represents the JSON structure for a public profile. The email
// and password hash never leave the server.
type ProfileDTO struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicPath string    `json:"profilePicPath,omitempty"`
	TotalFollowers int64     `json:"totalFollowers"`
	TotalFollowing int64     `json:"totalFollowing"`
	TotalArticles  int64     `json:"totalArticles"`
	CreatedAt      time.Time `json:"createdAt"`

	IsLoggedInUserFollowing *bool `json:"isLoggedInUserFollowing,omitempty"`
}

// RegisterHandler creates a new account.
type RegisterHandler struct {
	Svc    *userUC.Service
	Logger *slog.Logger
}

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Bio      string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	u, err := h.Svc.Register(r.Context(), userUC.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("account registered",
		slog.Int64("user_id", u.ID),
		slog.String("username", u.Username))

	respond.JSON(w, http.StatusCreated, map[string]any{
		"id":       u.ID,
		"username": u.Username,
	})
}

// ProfileHandler serves a public profile by username.
type ProfileHandler struct {
	Svc    *userUC.Service
	Logger *slog.Logger
}

func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.Svc.GetProfile(ctx, r.PathValue("username"), auth.ViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	dto := ProfileDTO{
		ID:             profile.User.ID,
		Username:       profile.User.Username,
		Bio:            profile.User.Bio,
		ProfilePicPath: profile.User.ProfilePicPath,
		TotalFollowers: profile.User.TotalFollowers,
		TotalFollowing: profile.User.TotalFollowing,
		TotalArticles:  profile.User.TotalArticles,
		CreatedAt:      profile.User.CreatedAt,

		IsLoggedInUserFollowing: profile.Following,
	}
	respond.JSON(w, http.StatusOK, map[string]ProfileDTO{"user": dto})
}

// FollowHandler makes the viewer follow another user.
type FollowHandler struct {
	Svc    *followUC.Service
	Logger *slog.Logger
}

func (h FollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathutil.ID(r, "userId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	created, err := h.Svc.FollowUser(ctx, userID, auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	if created {
		metrics.RecordFollow("user", true)
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"created": created})
}

// UnfollowHandler removes the viewer's follow edge to another user.
type UnfollowHandler struct {
	Svc    *followUC.Service
	Logger *slog.Logger
}

func (h UnfollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathutil.ID(r, "userId")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	removed, err := h.Svc.UnfollowUser(ctx, userID, auth.MustViewerID(ctx))
	if err != nil {
		respondError(w, err)
		return
	}

	if removed {
		metrics.RecordFollow("user", false)
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

var errInvalidUserID = errors.New("invalid path parameter: userId must be a positive integer")

// respondError maps user and follow use case errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userUC.ErrUserNotFound), errors.Is(err, followUC.ErrUserNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, userUC.ErrDuplicateUsername), errors.Is(err, userUC.ErrDuplicateEmail):
		respond.SafeError(w, http.StatusConflict, err)
	case errors.Is(err, followUC.ErrSelfFollow):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Register registers the user HTTP handlers with the given mux.
func Register(mux *http.ServeMux, userSvc *userUC.Service, followSvc *followUC.Service, logger *slog.Logger) {
	mux.Handle("POST /users", RegisterHandler{Svc: userSvc, Logger: logger})
	mux.Handle("GET /users/{username}", auth.Optional(ProfileHandler{Svc: userSvc, Logger: logger}))
	mux.Handle("POST /users/{userId}/follow", auth.Required(FollowHandler{Svc: followSvc, Logger: logger}))
	mux.Handle("DELETE /users/{userId}/unfollow", auth.Required(UnfollowHandler{Svc: followSvc, Logger: logger}))
}
