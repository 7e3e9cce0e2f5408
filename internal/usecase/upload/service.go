package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/storage"
	"devflow/internal/repository"
)

// extByType maps accepted content types to stored file extensions.
var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service provides image upload use cases.
type Service struct {
	Temp   repository.TempImageRepository
	Images storage.ImageStore
}

// SaveTemp stores an uploaded image under a fresh uuid name and records it as
// unattached. Attaching happens later, when an article or comment claims the
// path.
// Returns ErrUnsupportedImageType.
func (s *Service) SaveTemp(ctx context.Context, userID int64, contentType string, r io.Reader, size int64) (*entity.TempImage, error) {
	ext, ok := extByType[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	path := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.NewString(), ext)
	if err := s.Images.Put(ctx, path, r, size, contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &entity.TempImage{
		UserID:    userID,
		ImagePath: path,
		CreatedAt: time.Now(),
	}
	if err := s.Temp.Create(ctx, img); err != nil {
		// The file is unreferenced; the cleanup worker will reclaim it.
		return nil, fmt.Errorf("record temp image: %w", err)
	}
	return img, nil
}

// CleanupOrphans deletes up to batch temp images older than maxAge, file
// first, then row. Returns how many were reclaimed.
func (s *Service) CleanupOrphans(ctx context.Context, maxAge time.Duration, batch int) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	orphans, err := s.Temp.ListOlderThan(ctx, cutoff, batch)
	if err != nil {
		return 0, fmt.Errorf("list orphans: %w", err)
	}

	reclaimed := 0
	for _, img := range orphans {
		if err := s.Images.Delete(ctx, img.ImagePath); err != nil {
			return reclaimed, fmt.Errorf("delete file %s: %w", img.ImagePath, err)
		}
		if err := s.Temp.Delete(ctx, img.ID); err != nil {
			return reclaimed, fmt.Errorf("delete row %d: %w", img.ID, err)
		}
		reclaimed++
	}
	return reclaimed, nil
}
