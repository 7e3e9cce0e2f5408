package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"devflow/internal/domain/entity"
	hhttp "devflow/internal/handler/http"
	"devflow/internal/handler/http/auth"
	"devflow/internal/handler/http/requestid"
	uploadHandler "devflow/internal/handler/http/upload"
	uploadUC "devflow/internal/usecase/upload"
)

type stubTemp struct {
	created []*entity.TempImage
}

func (s *stubTemp) Create(_ context.Context, img *entity.TempImage) error {
	img.ID = int64(len(s.created) + 1)
	s.created = append(s.created, img)
	return nil
}

func (s *stubTemp) Claim(_ context.Context, _ int64, paths []string) ([]string, error) {
	return paths, nil
}

func (s *stubTemp) ListOlderThan(_ context.Context, _ time.Time, _ int) ([]*entity.TempImage, error) {
	return nil, nil
}

func (s *stubTemp) Delete(_ context.Context, _ int64) error { return nil }

type stubStore struct {
	objects map[string][]byte
}

func newStubStore() *stubStore { return &stubStore{objects: map[string][]byte{}} }

func (s *stubStore) Put(_ context.Context, path string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[path] = data
	return nil
}

func (s *stubStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.objects[path])), nil
}

func (s *stubStore) Delete(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// multipartImage builds a multipart body with one "image" part carrying the
// given content type.
func multipartImage(t *testing.T, contentType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="pic"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_StoresImage(t *testing.T) {
	temp := &stubTemp{}
	store := newStubStore()
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: temp, Images: store},
		Logger: testLogger(),
	}

	body, contentType := multipartImage(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := resp["path"]
	if !strings.HasPrefix(path, "uploads/5/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q", path)
	}
	if string(store.objects[path]) != "png-bytes" {
		t.Errorf("stored object = %q", store.objects[path])
	}
	if len(temp.created) != 1 || temp.created[0].ImagePath != path {
		t.Errorf("temp rows = %+v", temp.created)
	}
}

// A body between the global request cap and the upload cap must reach the
// handler untouched when the route is exempt from the global limit.
func TestUploadHandler_MidsizeImagePassesGlobalLimit(t *testing.T) {
	temp := &stubTemp{}
	store := newStubStore()
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: temp, Images: store},
		Logger: testLogger(),
	}
	wrapped := hhttp.LimitRequestBody(1<<20, "/images")(h)

	payload := bytes.Repeat([]byte{0xAB}, 2<<20)
	body, contentType := multipartImage(t, "image/png", payload)
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(temp.created) != 1 {
		t.Errorf("temp rows = %+v", temp.created)
	}
}

func TestUploadHandler_OversizeImage(t *testing.T) {
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: &stubTemp{}, Images: newStubStore()},
		Logger: testLogger(),
	}

	payload := bytes.Repeat([]byte{0xCD}, uploadHandler.MaxImageSize+1)
	body, contentType := multipartImage(t, "image/png", payload)
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if !strings.Contains(rec.Body.String(), "must not exceed") {
		t.Errorf("body = %s, want size message", rec.Body.String())
	}
}

func TestUploadHandler_UnsupportedType(t *testing.T) {
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: &stubTemp{}, Images: newStubStore()},
		Logger: testLogger(),
	}

	body, contentType := multipartImage(t, "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
}

func TestUploadHandler_LogsRequestID(t *testing.T) {
	var logBuf bytes.Buffer
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: &stubTemp{}, Images: newStubStore()},
		Logger: slog.New(slog.NewJSONHandler(&logBuf, nil)),
	}

	body, contentType := multipartImage(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	ctx := requestid.WithRequestID(req.Context(), "req-77")
	req = req.WithContext(auth.WithViewer(ctx, 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(logBuf.String(), `"request_id":"req-77"`) {
		t.Errorf("log output missing request id: %s", logBuf.String())
	}
}

func TestUploadHandler_MissingField(t *testing.T) {
	h := uploadHandler.UploadHandler{
		Svc:    &uploadUC.Service{Temp: &stubTemp{}, Images: newStubStore()},
		Logger: testLogger(),
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("other", "value"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
