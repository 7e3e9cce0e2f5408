package article_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devflow/internal/common/pagination"
	"devflow/internal/handler/http/article"
	"devflow/internal/handler/http/auth"
	artUC "devflow/internal/usecase/article"
)

func listHandler(repo *stubArticles) article.ListHandler {
	return article.ListHandler{
		Svc:           &artUC.Service{Repo: repo, Temp: &stubTemp{}, Images: &stubStore{}},
		Relations:     testOracle(),
		PaginationCfg: pagination.DefaultConfig(),
		Logger:        testLogger(),
	}
}

func TestListHandler_Anonymous(t *testing.T) {
	h := listHandler(&stubArticles{feed: sampleFeed()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Articles           []json.RawMessage `json:"articles"`
		LastArticleReached bool              `json:"lastArticleReached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(resp.Articles))
	}
	if !resp.LastArticleReached {
		t.Error("lastArticleReached = false, want true for a short page")
	}
	// Anonymous pages carry no relation flags at all.
	if strings.Contains(rec.Body.String(), "isLoggedInUserLiked") {
		t.Error("anonymous response must omit isLoggedInUserLiked")
	}
}

func TestListHandler_AuthedFlags(t *testing.T) {
	h := listHandler(&stubArticles{feed: sampleFeed()})

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req = req.WithContext(auth.WithViewer(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Articles []struct {
			ID                      int64 `json:"id"`
			IsLoggedInUserLiked     *bool `json:"isLoggedInUserLiked"`
			IsLoggedInUserFollowing *bool `json:"isLoggedInUserFollowing"`
			IsSavedArticle          *bool `json:"isSavedArticle"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, a := range resp.Articles {
		if a.IsLoggedInUserLiked == nil || a.IsLoggedInUserFollowing == nil || a.IsSavedArticle == nil {
			t.Fatalf("article %d missing relation flags", a.ID)
		}
		switch a.ID {
		case 1:
			if !*a.IsLoggedInUserLiked {
				t.Error("article 1 should be liked")
			}
			if !*a.IsLoggedInUserFollowing {
				t.Error("article 1's author should be followed")
			}
		case 2:
			if *a.IsLoggedInUserLiked {
				t.Error("article 2 should not be liked")
			}
		}
	}
}

func TestListHandler_InvalidAuthorID(t *testing.T) {
	h := listHandler(&stubArticles{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?authorId=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListHandler_FollowedFilterAnonymous(t *testing.T) {
	h := listHandler(&stubArticles{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?followedTarget=users", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestListHandler_InvalidLimit(t *testing.T) {
	h := listHandler(&stubArticles{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?limit=9999", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
