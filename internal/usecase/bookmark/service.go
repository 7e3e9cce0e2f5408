package bookmark

import (
	"context"
	"fmt"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// Service provides bookmark use cases.
type Service struct {
	Saves    repository.SavedArticleRepository
	Articles repository.ArticleRepository
}

// ListInput carries the filters and cursor for one bookmark page. Search
// matches the snapshotted title, Tag the snapshotted tag list.
type ListInput struct {
	UserID int64
	Search string
	Tag    string
	Page   pagination.Params
}

// ListResult is one page of bookmarks plus the end-of-page marker.
type ListResult struct {
	Bookmarks   []*entity.SavedArticle
	LastReached bool
}

// Save bookmarks the article for the user, snapshotting its current title
// and tags. A duplicate save is a no-op success; the bool reports whether a
// new bookmark was created.
// Returns ErrArticleNotFound.
func (s *Service) Save(ctx context.Context, userID, articleID int64) (bool, error) {
	art, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return false, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return false, ErrArticleNotFound
	}

	created, err := s.Saves.Save(ctx, &entity.SavedArticle{
		UserID:       userID,
		ArticleID:    articleID,
		ArticleTitle: art.Title,
		Tags:         art.Tags,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("save article: %w", err)
	}
	return created, nil
}

// Unsave removes the bookmark. Removing an absent bookmark is a no-op
// success; the bool reports whether one was actually removed.
func (s *Service) Unsave(ctx context.Context, userID, articleID int64) (bool, error) {
	removed, err := s.Saves.Unsave(ctx, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("unsave article: %w", err)
	}
	return removed, nil
}

// List retrieves one bookmark page for the user, newest-first.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	tag := in.Tag
	if tag != "" {
		tag = entity.NormalizeTag(tag)
	}
	rows, err := s.Saves.ListPage(ctx, in.UserID, in.Search, tag, in.Page.AfterID, pagination.FetchSize(in.Page.Limit))
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	items, last := pagination.Trim(rows, in.Page.Limit)
	pagination.RecordPage("bookmarks", last)
	return &ListResult{Bookmarks: items, LastReached: last}, nil
}
