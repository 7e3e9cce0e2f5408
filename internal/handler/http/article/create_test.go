package article_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devflow/internal/handler/http/article"
	"devflow/internal/handler/http/auth"
	artUC "devflow/internal/usecase/article"
)

func createHandler(repo *stubArticles) article.CreateHandler {
	return article.CreateHandler{
		Svc:    &artUC.Service{Repo: repo, Temp: &stubTemp{}, Images: &stubStore{}},
		Logger: testLogger(),
	}
}

func authed(req *http.Request, userID int64) *http.Request {
	return req.WithContext(auth.WithViewer(req.Context(), userID))
}

func TestCreateHandler_Success(t *testing.T) {
	h := createHandler(&stubArticles{})

	body := `{"title":"Hello DevFlow","body":"A long enough body.","tags":["Go","#go","Web"]}`
	req := authed(httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body)), 5)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID   int64  `json:"id"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 101 {
		t.Errorf("id = %d, want 101", resp.ID)
	}
	if !strings.HasPrefix(resp.Slug, "hello-devflow-") {
		t.Errorf("slug = %q, want hello-devflow- prefix", resp.Slug)
	}
}

func TestCreateHandler_ValidationErrors(t *testing.T) {
	h := createHandler(&stubArticles{})

	req := authed(httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(`{"title":"","body":""}`)), 5)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected structured field errors")
	}
}

func TestCreateHandler_BadJSON(t *testing.T) {
	h := createHandler(&stubArticles{})

	req := authed(httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader("{")), 5)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
