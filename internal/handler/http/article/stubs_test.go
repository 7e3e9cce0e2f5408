package article_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/repository"
	"devflow/internal/usecase/relation"
)

// stubArticles is an in-memory ArticleRepository for handler tests.
type stubArticles struct {
	feed       []repository.ArticleWithAuthor
	bySlug     map[string]*repository.ArticleWithAuthor
	byID       map[int64]*entity.Article
	cascade    *repository.ArticleCascade
	imagePaths []string
	err        error

	deletedID int64
}

func (s *stubArticles) ListFeed(_ context.Context, _ repository.FeedFilter, _ *pagination.Keyset, fetch int) ([]repository.ArticleWithAuthor, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.feed) > fetch {
		return s.feed[:fetch], nil
	}
	return s.feed, nil
}

func (s *stubArticles) ListTop(_ context.Context, _ time.Time, _ *pagination.Keyset, fetch int) ([]repository.ArticleWithAuthor, error) {
	return s.ListFeed(nil, repository.FeedFilter{}, nil, fetch)
}

func (s *stubArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	return s.byID[id], nil
}

func (s *stubArticles) GetBySlug(_ context.Context, slug string) (*repository.ArticleWithAuthor, error) {
	return s.bySlug[slug], nil
}

func (s *stubArticles) Create(_ context.Context, a *entity.Article) error {
	a.ID = 101
	return nil
}

func (s *stubArticles) Update(_ context.Context, _ *entity.Article, _, _ []string) error {
	return nil
}

func (s *stubArticles) CollectImagePaths(_ context.Context, _ int64) ([]string, error) {
	return s.imagePaths, nil
}

func (s *stubArticles) DeleteCascade(_ context.Context, id int64) (*repository.ArticleCascade, error) {
	s.deletedID = id
	return s.cascade, nil
}

// stubTemp owns every path it is asked about.
type stubTemp struct{}

func (s *stubTemp) Create(_ context.Context, _ *entity.TempImage) error { return nil }
func (s *stubTemp) Claim(_ context.Context, _ int64, paths []string) ([]string, error) {
	return paths, nil
}
func (s *stubTemp) ListOlderThan(_ context.Context, _ time.Time, _ int) ([]*entity.TempImage, error) {
	return nil, nil
}
func (s *stubTemp) Delete(_ context.Context, _ int64) error { return nil }

type stubStore struct{}

func (s *stubStore) Put(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
	return nil
}
func (s *stubStore) Get(_ context.Context, _ string) (io.ReadCloser, error) { return nil, nil }
func (s *stubStore) Delete(_ context.Context, _ string) error              { return nil }

// Relation stubs feeding the oracle.
type stubLikes struct{ liked map[int64]bool }

func (s *stubLikes) Create(_ context.Context, _ *entity.Like) (bool, error) { return false, nil }
func (s *stubLikes) Delete(_ context.Context, _, _ int64, _ entity.LikeTarget) (bool, error) {
	return false, nil
}
func (s *stubLikes) LikedSet(_ context.Context, _ int64, _ []int64, _ entity.LikeTarget) (map[int64]bool, error) {
	return s.liked, nil
}

type stubFollows struct{ following map[int64]bool }

func (s *stubFollows) Follow(_ context.Context, _, _ int64) (bool, error)   { return false, nil }
func (s *stubFollows) Unfollow(_ context.Context, _, _ int64) (bool, error) { return false, nil }
func (s *stubFollows) FollowingSet(_ context.Context, _ int64, _ []int64) (map[int64]bool, error) {
	return s.following, nil
}

type stubSaves struct{ saved map[int64]bool }

func (s *stubSaves) Save(_ context.Context, _ *entity.SavedArticle) (bool, error) {
	return false, nil
}
func (s *stubSaves) Unsave(_ context.Context, _, _ int64) (bool, error) { return false, nil }
func (s *stubSaves) ListPage(_ context.Context, _ int64, _, _ string, _ *int64, _ int) ([]*entity.SavedArticle, error) {
	return nil, nil
}
func (s *stubSaves) SavedSet(_ context.Context, _ int64, _ []int64) (map[int64]bool, error) {
	return s.saved, nil
}

type stubTags struct{ following map[string]bool }

func (s *stubTags) ListPage(_ context.Context, _ *string, _ int) ([]*entity.Tag, error) {
	return nil, nil
}
func (s *stubTags) Get(_ context.Context, _ string) (*entity.Tag, error)      { return nil, nil }
func (s *stubTags) Follow(_ context.Context, _ string, _ int64) (bool, error) { return false, nil }
func (s *stubTags) Unfollow(_ context.Context, _ string, _ int64) (bool, error) {
	return false, nil
}
func (s *stubTags) FollowingSet(_ context.Context, _ int64, _ []string) (map[string]bool, error) {
	return s.following, nil
}

func testOracle() *relation.Oracle {
	return &relation.Oracle{
		Likes:   &stubLikes{liked: map[int64]bool{1: true}},
		Follows: &stubFollows{following: map[int64]bool{10: true}},
		Saves:   &stubSaves{saved: map[int64]bool{}},
		Tags:    &stubTags{following: map[string]bool{}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleFeed() []repository.ArticleWithAuthor {
	return []repository.ArticleWithAuthor{
		{
			Article: &entity.Article{
				ID:        2,
				AuthorID:  11,
				Title:     "Second",
				Slug:      "second-bbbbbbbb",
				Tags:      []string{"#go"},
				LikeCount: 4,
			},
			AuthorUsername: "bob",
		},
		{
			Article: &entity.Article{
				ID:        1,
				AuthorID:  10,
				Title:     "First",
				Slug:      "first-aaaaaaaa",
				Tags:      []string{"#go", "#web"},
				LikeCount: 9,
			},
			AuthorUsername: "alice",
		},
	}
}
