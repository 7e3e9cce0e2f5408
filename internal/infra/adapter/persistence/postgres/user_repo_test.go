package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devflow/internal/domain/entity"
	pg "devflow/internal/infra/adapter/persistence/postgres"
	"devflow/internal/repository"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "hash", "", "", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := pg.NewUserRepo(db)
	user := &entity.User{
		Username: "alice", Email: "alice@example.com",
		PasswordHash: "hash", CreatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(5), user.ID, "ID not set")
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	repo := pg.NewUserRepo(db)
	err = repo.Create(context.Background(), &entity.User{Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := pg.NewUserRepo(db)
	err = repo.Create(context.Background(), &entity.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "password_hash", "bio", "profile_pic_path",
			"total_followers", "total_following", "total_articles", "created_at",
		}).AddRow(int64(5), "alice", "alice@example.com", "hash", "", "", int64(3), int64(1), int64(2), now))

	repo := pg.NewUserRepo(db)
	got, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(3), got.TotalFollowers)
}

func TestUserRepo_Get_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "password_hash", "bio", "profile_pic_path",
			"total_followers", "total_following", "total_articles", "created_at",
		}))

	repo := pg.NewUserRepo(db)
	got, err := repo.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got, "missing user must come back nil")
}
