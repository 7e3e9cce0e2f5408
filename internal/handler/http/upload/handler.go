// Package upload exposes the image upload endpoint. Uploaded files land in
// temp-image state and stay unattached until an article or comment claims
// their paths.
package upload

import (
	"errors"
	"log/slog"
	"net/http"

	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/respond"
	"devflow/internal/observability/logging"
	"devflow/internal/observability/metrics"
	uploadUC "devflow/internal/usecase/upload"
)

// MaxImageSize caps a single uploaded image at 5 MiB.
const MaxImageSize = 5 << 20

var (
	errMissingImage  = errors.New("invalid request: multipart field \"image\" is required")
	errImageTooLarge = errors.New("image must not exceed 5 MiB")
)

// UploadHandler accepts a multipart image upload and stores it as a temp
// image owned by the viewer.
type UploadHandler struct {
	Svc    *uploadUC.Service
	Logger *slog.Logger
}

func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)
	userID := auth.MustViewerID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errImageTooLarge)
			return
		}
		respond.SafeError(w, http.StatusBadRequest, errMissingImage)
		return
	}
	defer file.Close()

	img, err := h.Svc.SaveTemp(ctx, userID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, uploadUC.ErrUnsupportedImageType) {
			respond.SafeError(w, http.StatusUnsupportedMediaType, err)
			return
		}
		logger.Error("failed to store image",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordImageUploaded()
	logger.Info("image uploaded",
		slog.Int64("user_id", userID),
		slog.String("path", img.ImagePath),
		slog.Int64("size", header.Size))

	respond.JSON(w, http.StatusCreated, map[string]string{"path": img.ImagePath})
}

// Register registers the upload HTTP handler with the given mux.
func Register(mux *http.ServeMux, svc *uploadUC.Service, logger *slog.Logger) {
	mux.Handle("POST /images", auth.Required(UploadHandler{Svc: svc, Logger: logger}))
}
