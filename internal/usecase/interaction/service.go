package interaction

import (
	"context"
	"fmt"
	"time"

	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// Service provides like and unlike use cases. Both are idempotent: repeating
// a like or removing an absent one succeeds without touching any counter.
type Service struct {
	Likes    repository.LikeRepository
	Articles repository.ArticleRepository
	Comments repository.CommentRepository
}

// Like records that the user liked the target. The returned bool reports
// whether a new like was created; false means the user had already liked it.
// Returns ErrInvalidTargetType or ErrTargetNotFound.
func (s *Service) Like(ctx context.Context, userID int64, targetType string, targetID int64) (bool, error) {
	target := entity.LikeTarget(targetType)
	if !target.Valid() {
		return false, ErrInvalidTargetType
	}
	if err := s.checkTarget(ctx, target, targetID); err != nil {
		return false, err
	}

	created, err := s.Likes.Create(ctx, &entity.Like{
		UserID:     userID,
		TargetID:   targetID,
		TargetType: target,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("create like: %w", err)
	}
	return created, nil
}

// Unlike removes the user's like from the target. The returned bool reports
// whether a like was actually removed.
// Returns ErrInvalidTargetType or ErrTargetNotFound.
func (s *Service) Unlike(ctx context.Context, userID int64, targetType string, targetID int64) (bool, error) {
	target := entity.LikeTarget(targetType)
	if !target.Valid() {
		return false, ErrInvalidTargetType
	}
	if err := s.checkTarget(ctx, target, targetID); err != nil {
		return false, err
	}

	deleted, err := s.Likes.Delete(ctx, userID, targetID, target)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return deleted, nil
}

func (s *Service) checkTarget(ctx context.Context, target entity.LikeTarget, targetID int64) error {
	switch target {
	case entity.TargetArticle:
		art, err := s.Articles.Get(ctx, targetID)
		if err != nil {
			return fmt.Errorf("get article: %w", err)
		}
		if art == nil {
			return ErrTargetNotFound
		}
	case entity.TargetComment:
		c, err := s.Comments.Get(ctx, targetID)
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}
		if c == nil {
			return ErrTargetNotFound
		}
	}
	return nil
}
