package repository

import (
	"context"
	"time"

	"devflow/internal/domain/entity"
)

type TempImageRepository interface {
	// Create records an uploaded-but-unattached image. Sets image.ID.
	Create(ctx context.Context, image *entity.TempImage) error
	// Claim removes the temp rows for the given paths owned by userID and
	// returns the paths actually claimed. Attaching images to an article or
	// comment goes through Claim so only the uploader can reference them.
	Claim(ctx context.Context, userID int64, paths []string) ([]string, error)
	// ListOlderThan returns up to limit orphaned uploads created before
	// cutoff, oldest first. The cleanup worker deletes their files and then
	// the rows.
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*entity.TempImage, error)
	Delete(ctx context.Context, id int64) error
}
