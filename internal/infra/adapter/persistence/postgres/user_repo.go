package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

// Postgres error code for unique_violation.
const uniqueViolation = "23505"

type UserRepo struct {
	db db.Handle
}

func NewUserRepo(handle db.Handle) repository.UserRepository {
	return &UserRepo{db: handle}
}

const userColumns = `
id, username, email, password_hash, bio, profile_pic_path,
total_followers, total_following, total_articles, created_at`

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const insert = `
INSERT INTO users (username, email, password_hash, bio, profile_pic_path, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, insert,
		user.Username, user.Email, user.PasswordHash,
		user.Bio, user.ProfilePicPath, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return repository.ErrDuplicateUsername
			case "users_email_key":
				return repository.ErrDuplicateEmail
			}
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	return repo.getOne(ctx, query, id)
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 LIMIT 1`, userColumns)
	return repo.getOne(ctx, query, username)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	return repo.getOne(ctx, query, email)
}

func (repo *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Bio, &user.ProfilePicPath,
		&user.TotalFollowers, &user.TotalFollowing, &user.TotalArticles,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getOne: %w", err)
	}
	return &user, nil
}
