package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

type TagRepo struct {
	db db.Handle
}

func NewTagRepo(handle db.Handle) repository.TagRepository {
	return &TagRepo{db: handle}
}

func (repo *TagRepo) ListPage(ctx context.Context, afterName *string, fetch int) ([]*entity.Tag, error) {
	query := `
SELECT tag_name, follower_count, article_count, created_at
FROM tags`
	args := []any{}
	if afterName != nil {
		args = append(args, *afterName)
		query += fmt.Sprintf("\nWHERE tag_name > $%d", len(args))
	}
	args = append(args, fetch)
	query += fmt.Sprintf("\nORDER BY tag_name ASC\nLIMIT $%d", len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.Tag, 0, fetch)
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.Name, &tag.FollowerCount, &tag.ArticleCount, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListPage: Scan: %w", err)
		}
		result = append(result, &tag)
	}
	return result, rows.Err()
}

func (repo *TagRepo) Get(ctx context.Context, name string) (*entity.Tag, error) {
	const query = `
SELECT tag_name, follower_count, article_count, created_at
FROM tags
WHERE tag_name = $1
LIMIT 1`
	var tag entity.Tag
	err := repo.db.QueryRowContext(ctx, query, name).Scan(
		&tag.Name, &tag.FollowerCount, &tag.ArticleCount, &tag.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &tag, nil
}

func (repo *TagRepo) Follow(ctx context.Context, name string, userID int64) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Follow: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
INSERT INTO tag_followers (tag_name, user_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (tag_name, user_id) DO NOTHING`
	res, err := tx.ExecContext(ctx, insert, name, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("Follow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Follow: %w", err)
	}
	if n == 0 {
		return false, tx.Commit()
	}

	const bump = `UPDATE tags SET follower_count = follower_count + 1 WHERE tag_name = $1`
	if _, err := tx.ExecContext(ctx, bump, name); err != nil {
		return false, fmt.Errorf("Follow: counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Follow: commit: %w", err)
	}
	return true, nil
}

func (repo *TagRepo) Unfollow(ctx context.Context, name string, userID int64) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Unfollow: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const remove = `DELETE FROM tag_followers WHERE tag_name = $1 AND user_id = $2`
	res, err := tx.ExecContext(ctx, remove, name, userID)
	if err != nil {
		return false, fmt.Errorf("Unfollow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Unfollow: %w", err)
	}
	if n == 0 {
		return false, tx.Commit()
	}

	const drop = `UPDATE tags SET follower_count = follower_count - 1 WHERE tag_name = $1`
	if _, err := tx.ExecContext(ctx, drop, name); err != nil {
		return false, fmt.Errorf("Unfollow: counter: %w", err)
	}

	// A tag with no articles and no followers is unreachable; reclaim it.
	const reclaim = `DELETE FROM tags WHERE tag_name = $1 AND article_count <= 0 AND follower_count <= 0`
	if _, err := tx.ExecContext(ctx, reclaim, name); err != nil {
		return false, fmt.Errorf("Unfollow: reclaim: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Unfollow: commit: %w", err)
	}
	return true, nil
}

func (repo *TagRepo) FollowingSet(ctx context.Context, userID int64, names []string) (map[string]bool, error) {
	if len(names) == 0 {
		return map[string]bool{}, nil
	}
	const query = `SELECT tag_name FROM tag_followers WHERE user_id = $1 AND tag_name = ANY($2)`
	rows, err := repo.db.QueryContext(ctx, query, userID, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("FollowingSet: %w", err)
	}
	defer func() { _ = rows.Close() }()

	following := make(map[string]bool, len(names))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("FollowingSet: Scan: %w", err)
		}
		following[name] = true
	}
	return following, rows.Err()
}
