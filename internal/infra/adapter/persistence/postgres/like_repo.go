package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

type LikeRepo struct {
	db db.Handle
}

func NewLikeRepo(handle db.Handle) repository.LikeRepository {
	return &LikeRepo{db: handle}
}

// counterTable maps a like target to the table carrying its like_count.
func counterTable(target entity.LikeTarget) string {
	if target == entity.TargetComment {
		return "comments"
	}
	return "articles"
}

func (repo *LikeRepo) Create(ctx context.Context, like *entity.Like) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
INSERT INTO likes (user_id, target_id, target_type, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, target_id, target_type) DO NOTHING`
	res, err := tx.ExecContext(ctx, insert, like.UserID, like.TargetID, like.TargetType, like.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("Create: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Create: %w", err)
	}
	if n == 0 {
		// Already liked. Nothing to count.
		return false, tx.Commit()
	}

	bump := fmt.Sprintf(`UPDATE %s SET like_count = like_count + 1 WHERE id = $1`, counterTable(like.TargetType))
	if _, err := tx.ExecContext(ctx, bump, like.TargetID); err != nil {
		return false, fmt.Errorf("Create: counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Create: commit: %w", err)
	}
	return true, nil
}

func (repo *LikeRepo) Delete(ctx context.Context, userID, targetID int64, target entity.LikeTarget) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Delete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const remove = `DELETE FROM likes WHERE user_id = $1 AND target_id = $2 AND target_type = $3`
	res, err := tx.ExecContext(ctx, remove, userID, targetID, target)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return false, tx.Commit()
	}

	drop := fmt.Sprintf(`UPDATE %s SET like_count = like_count - 1 WHERE id = $1`, counterTable(target))
	if _, err := tx.ExecContext(ctx, drop, targetID); err != nil {
		return false, fmt.Errorf("Delete: counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Delete: commit: %w", err)
	}
	return true, nil
}

func (repo *LikeRepo) LikedSet(ctx context.Context, userID int64, targetIDs []int64, target entity.LikeTarget) (map[int64]bool, error) {
	if len(targetIDs) == 0 {
		return map[int64]bool{}, nil
	}
	const query = `
SELECT target_id FROM likes
WHERE user_id = $1 AND target_type = $2 AND target_id = ANY($3)`
	rows, err := repo.db.QueryContext(ctx, query, userID, target, pq.Array(targetIDs))
	if err != nil {
		return nil, fmt.Errorf("LikedSet: %w", err)
	}
	defer func() { _ = rows.Close() }()

	liked := make(map[int64]bool, len(targetIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("LikedSet: Scan: %w", err)
		}
		liked[id] = true
	}
	return liked, rows.Err()
}
