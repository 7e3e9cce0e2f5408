package interact

import (
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	intUC "devflow/internal/usecase/interaction"
)

// Register registers the like and unlike handlers with the given mux.
func Register(mux *http.ServeMux, svc *intUC.Service, logger *slog.Logger) {
	mux.Handle("POST /interact/like/{targetType}/{targetId}", auth.Required(LikeHandler{Svc: svc, Logger: logger}))
	mux.Handle("POST /interact/unlike/{targetType}/{targetId}", auth.Required(UnlikeHandler{Svc: svc, Logger: logger}))
}
