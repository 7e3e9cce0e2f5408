package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	pg "devflow/internal/infra/adapter/persistence/postgres"
	"devflow/internal/repository"
)

var articleCols = []string{
	"id", "author_id", "title", "slug", "summary", "body",
	"like_count", "comment_count", "created_at", "updated_at",
	"tags", "images", "username", "profile_pic_path",
}

func articleRow(a *entity.Article, username, profilePic string) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).AddRow(
		a.ID, a.AuthorID, a.Title, a.Slug, a.Summary, a.Body,
		a.LikeCount, a.CommentCount, a.CreatedAt, a.UpdatedAt,
		"{#go,#web}", "{}", username, profilePic,
	)
}

func TestArticleRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	article := &entity.Article{
		ID: 1, AuthorID: 2, Title: "Keyset pagination in practice",
		Slug: "keyset-pagination-in-practice-ab12cd34", Summary: "sum", Body: "body",
		LikeCount: 3, CommentCount: 1, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("FROM articles a").
		WithArgs(article.Slug).
		WillReturnRows(articleRow(article, "alice", "pics/alice.png"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.GetBySlug(context.Background(), article.Slug)
	if err != nil {
		t.Fatalf("GetBySlug err=%v", err)
	}
	article.Tags = []string{"#go", "#web"}
	article.Images = []string{}
	want := &repository.ArticleWithAuthor{
		Article: article, AuthorUsername: "alice", AuthorProfilePic: "pics/alice.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_GetBySlug_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles a").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	got, err := repo.GetBySlug(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetBySlug err=%v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing slug, got %+v", got)
	}
}

func TestArticleRepo_ListFeed_Cursor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	rows := sqlmock.NewRows(articleCols).
		AddRow(int64(41), int64(2), "t41", "s41", "", "b", int64(0), int64(0), now, now, "{}", "{}", "alice", "").
		AddRow(int64(40), int64(3), "t40", "s40", "", "b", int64(0), int64(0), now, now, "{}", "{}", "bob", "")

	mock.ExpectQuery("ORDER BY a.id DESC").
		WithArgs(int64(42), 13).
		WillReturnRows(rows)

	repo := pg.NewArticleRepo(db)
	got, err := repo.ListFeed(context.Background(), repository.FeedFilter{}, &pagination.Keyset{ID: 42}, 13)
	if err != nil {
		t.Fatalf("ListFeed err=%v", err)
	}
	if len(got) != 2 || got[0].Article.ID != 41 || got[1].Article.ID != 40 {
		t.Fatalf("unexpected page: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	article := &entity.Article{
		AuthorID: 2, Title: "t", Slug: "t-ab12cd34",
		Summary: "s", Body: "b", CreatedAt: now,
		Tags:   []string{"#go"},
		Images: []string{"articles/img1.png"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(int64(2), "t", "t-ab12cd34", "s", "b", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tags")).
		WithArgs("#go").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WithArgs(int64(9), "#go").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_images")).
		WithArgs(int64(9), "articles/img1.png", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET total_articles = total_articles + 1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	if err := repo.Create(context.Background(), article); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if article.ID != 9 {
		t.Fatalf("ID not set, got %d", article.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_DeleteCascade(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT author_id FROM articles")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 4)) // comment likes
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comment_images")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 5)) // article likes
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_articles")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT tag_name FROM article_tags")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"tag_name"}).AddRow("#go"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM article_tags")).
		WithArgs(int64(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tags")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tags")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT tag_name FROM tags")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"tag_name"})) // #go reclaimed
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM article_images")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET total_articles = total_articles - 1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	got, err := repo.DeleteCascade(context.Background(), 9)
	if err != nil {
		t.Fatalf("DeleteCascade err=%v", err)
	}
	want := &repository.ArticleCascade{
		CommentsDeleted: 3,
		LikesDeleted:    9,
		SavesDeleted:    2,
		TagsReclaimed:   []string{"#go"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cascade mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
