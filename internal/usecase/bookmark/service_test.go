package bookmark_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/repository"
	bookmarkUC "devflow/internal/usecase/bookmark"
)

type stubSaves struct {
	data    map[[2]int64]*entity.SavedArticle // {userID, articleID}
	lastTag string
}

func newStubSaves() *stubSaves { return &stubSaves{data: map[[2]int64]*entity.SavedArticle{}} }

func (s *stubSaves) Save(_ context.Context, saved *entity.SavedArticle) (bool, error) {
	key := [2]int64{saved.UserID, saved.ArticleID}
	if _, dup := s.data[key]; dup {
		return false, nil
	}
	s.data[key] = saved
	return true, nil
}

func (s *stubSaves) Unsave(_ context.Context, userID, articleID int64) (bool, error) {
	key := [2]int64{userID, articleID}
	if _, ok := s.data[key]; !ok {
		return false, nil
	}
	delete(s.data, key)
	return true, nil
}

func (s *stubSaves) ListPage(_ context.Context, userID int64, _, tag string, _ *int64, fetch int) ([]*entity.SavedArticle, error) {
	s.lastTag = tag
	var out []*entity.SavedArticle
	for key, saved := range s.data {
		if key[0] == userID {
			out = append(out, saved)
			if len(out) == fetch {
				break
			}
		}
	}
	return out, nil
}

func (s *stubSaves) SavedSet(context.Context, int64, []int64) (map[int64]bool, error) {
	return nil, nil
}

type stubArticles struct{ data map[int64]*entity.Article }

func (s *stubArticles) ListFeed(context.Context, repository.FeedFilter, *pagination.Keyset, int) ([]repository.ArticleWithAuthor, error) {
	return nil, nil
}
func (s *stubArticles) ListTop(context.Context, time.Time, *pagination.Keyset, int) ([]repository.ArticleWithAuthor, error) {
	return nil, nil
}
func (s *stubArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	return s.data[id], nil
}
func (s *stubArticles) GetBySlug(context.Context, string) (*repository.ArticleWithAuthor, error) {
	return nil, nil
}
func (s *stubArticles) Create(context.Context, *entity.Article) error                     { return nil }
func (s *stubArticles) Update(context.Context, *entity.Article, []string, []string) error { return nil }
func (s *stubArticles) CollectImagePaths(context.Context, int64) ([]string, error)        { return nil, nil }
func (s *stubArticles) DeleteCascade(context.Context, int64) (*repository.ArticleCascade, error) {
	return nil, nil
}

func newService(saves *stubSaves) *bookmarkUC.Service {
	return &bookmarkUC.Service{
		Saves: saves,
		Articles: &stubArticles{data: map[int64]*entity.Article{
			9: {ID: 9, Title: "Keyset pagination", Tags: []string{"#go", "#sql"}},
		}},
	}
}

func TestService_Save_Snapshot(t *testing.T) {
	saves := newStubSaves()
	svc := newService(saves)

	created, err := svc.Save(context.Background(), 7, 9)
	require.NoError(t, err)
	require.True(t, created)
	got := saves.data[[2]int64{7, 9}]
	assert.Equal(t, "Keyset pagination", got.ArticleTitle)
	assert.Len(t, got.Tags, 2)
}

func TestService_Save_Duplicate(t *testing.T) {
	saves := newStubSaves()
	svc := newService(saves)
	ctx := context.Background()

	_, err := svc.Save(ctx, 7, 9)
	require.NoError(t, err)

	created, err := svc.Save(ctx, 7, 9)
	require.NoError(t, err)
	assert.False(t, created, "duplicate save must not create")
}

func TestService_Save_MissingArticle(t *testing.T) {
	svc := newService(newStubSaves())

	_, err := svc.Save(context.Background(), 7, 404)
	assert.ErrorIs(t, err, bookmarkUC.ErrArticleNotFound)
}

func TestService_List_NormalizesTagFilter(t *testing.T) {
	saves := newStubSaves()
	svc := newService(saves)

	_, err := svc.List(context.Background(), bookmarkUC.ListInput{
		UserID: 7, Tag: "Go", Page: pagination.Params{Limit: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, "#go", saves.lastTag, "tag filter not normalized")
}

func TestService_Unsave_Absent(t *testing.T) {
	svc := newService(newStubSaves())

	removed, err := svc.Unsave(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.False(t, removed, "unsave of absent bookmark must report removed=false")
}
