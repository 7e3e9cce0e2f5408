package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

type TempImageRepo struct {
	db db.Handle
}

func NewTempImageRepo(handle db.Handle) repository.TempImageRepository {
	return &TempImageRepo{db: handle}
}

func (repo *TempImageRepo) Create(ctx context.Context, image *entity.TempImage) error {
	const insert = `
INSERT INTO temp_images (user_id, image_path, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, insert, image.UserID, image.ImagePath, image.CreatedAt).Scan(&image.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *TempImageRepo) Claim(ctx context.Context, userID int64, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	const claim = `
DELETE FROM temp_images
WHERE user_id = $1 AND image_path = ANY($2)
RETURNING image_path`
	rows, err := repo.db.QueryContext(ctx, claim, userID, pq.Array(paths))
	if err != nil {
		return nil, fmt.Errorf("Claim: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var claimed []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("Claim: Scan: %w", err)
		}
		claimed = append(claimed, p)
	}
	return claimed, rows.Err()
}

func (repo *TempImageRepo) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*entity.TempImage, error) {
	const query = `
SELECT id, user_id, image_path, created_at
FROM temp_images
WHERE created_at < $1
ORDER BY created_at ASC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("ListOlderThan: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*entity.TempImage
	for rows.Next() {
		var image entity.TempImage
		if err := rows.Scan(&image.ID, &image.UserID, &image.ImagePath, &image.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListOlderThan: Scan: %w", err)
		}
		result = append(result, &image)
	}
	return result, rows.Err()
}

func (repo *TempImageRepo) Delete(ctx context.Context, id int64) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM temp_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
