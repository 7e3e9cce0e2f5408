package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

type FollowRepo struct {
	db db.Handle
}

func NewFollowRepo(handle db.Handle) repository.FollowRepository {
	return &FollowRepo{db: handle}
}

func (repo *FollowRepo) Follow(ctx context.Context, userID, followerID int64) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Follow: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
INSERT INTO followers (user_id, follower_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, follower_id) DO NOTHING`
	res, err := tx.ExecContext(ctx, insert, userID, followerID, time.Now().UTC())
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

	const bumpFollowers = `UPDATE users SET total_followers = total_followers + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bumpFollowers, userID); err != nil {
		return false, fmt.Errorf("Follow: followers counter: %w", err)
	}
	const bumpFollowing = `UPDATE users SET total_following = total_following + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bumpFollowing, followerID); err != nil {
		return false, fmt.Errorf("Follow: following counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Follow: commit: %w", err)
	}
	return true, nil
}

func (repo *FollowRepo) Unfollow(ctx context.Context, userID, followerID int64) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Unfollow: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const remove = `DELETE FROM followers WHERE user_id = $1 AND follower_id = $2`
	res, err := tx.ExecContext(ctx, remove, userID, followerID)
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

	const dropFollowers = `UPDATE users SET total_followers = total_followers - 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, dropFollowers, userID); err != nil {
		return false, fmt.Errorf("Unfollow: followers counter: %w", err)
	}
	const dropFollowing = `UPDATE users SET total_following = total_following - 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, dropFollowing, followerID); err != nil {
		return false, fmt.Errorf("Unfollow: following counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Unfollow: commit: %w", err)
	}
	return true, nil
}

func (repo *FollowRepo) FollowingSet(ctx context.Context, followerID int64, userIDs []int64) (map[int64]bool, error) {
	if len(userIDs) == 0 {
		return map[int64]bool{}, nil
	}
	const query = `SELECT user_id FROM followers WHERE follower_id = $1 AND user_id = ANY($2)`
	rows, err := repo.db.QueryContext(ctx, query, followerID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("FollowingSet: %w", err)
	}
	defer func() { _ = rows.Close() }()

	following := make(map[int64]bool, len(userIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("FollowingSet: Scan: %w", err)
		}
		following[id] = true
	}
	return following, rows.Err()
}
