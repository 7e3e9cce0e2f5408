package comment

import (
	"context"
	"fmt"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/infra/storage"
	"devflow/internal/repository"
)

// Service provides comment management use cases.
type Service struct {
	Comments repository.CommentRepository
	Articles repository.ArticleRepository
	Temp     repository.TempImageRepository
	Images   storage.ImageStore
}

// ListInput carries the target and cursor for one comment page. A nil
// ParentCommentID lists top-level comments newest-first; a set one lists that
// thread's replies oldest-first.
type ListInput struct {
	ArticleID       int64
	ParentCommentID *int64
	Page            pagination.Params
}

// ListResult is one page of comments plus the end-of-page marker.
type ListResult struct {
	Comments    []repository.CommentWithAuthor
	LastReached bool
}

// CreateInput represents the input parameters for posting a comment or reply.
type CreateInput struct {
	ArticleID       int64
	AuthorID        int64
	ParentCommentID *int64
	Body            string
	Images          []string
}

// List retrieves one comment page for an article.
// Returns ErrArticleNotFound or ErrParentNotFound for a missing target.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	art, err := s.Articles.Get(ctx, in.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if in.ParentCommentID != nil {
		if err := s.checkParent(ctx, in.ArticleID, *in.ParentCommentID); err != nil {
			return nil, err
		}
	}

	rows, err := s.Comments.ListPage(ctx, in.ArticleID, in.ParentCommentID, in.Page.AfterID, pagination.FetchSize(in.Page.Limit))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	items, last := pagination.Trim(rows, in.Page.Limit)
	pagination.RecordPage("comments", last)
	return &ListResult{Comments: items, LastReached: last}, nil
}

// Create posts a comment or reply. Replies are limited to one level; the
// parent must be a top-level comment on the same article.
// Returns a ValidationError for a bad body, ErrArticleNotFound,
// ErrParentNotFound, or ErrNestedReply.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Comment, error) {
	if err := entity.ValidateCommentBody(in.Body); err != nil {
		return nil, err
	}

	art, err := s.Articles.Get(ctx, in.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if in.ParentCommentID != nil {
		if err := s.checkParent(ctx, in.ArticleID, *in.ParentCommentID); err != nil {
			return nil, err
		}
	}

	images, err := s.claimImages(ctx, in.AuthorID, in.Images)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{
		ArticleID:       in.ArticleID,
		AuthorID:        in.AuthorID,
		ParentCommentID: in.ParentCommentID,
		Body:            in.Body,
		Images:          images,
		CreatedAt:       time.Now(),
	}
	c.UpdatedAt = c.CreatedAt

	if err := s.Comments.Create(ctx, c); err != nil {
		// The claimed temp rows are already gone; put them back so the
		// uploaded files stay visible to the cleanup worker.
		if rerr := s.restoreTempImages(ctx, in.AuthorID, images); rerr != nil {
			return nil, fmt.Errorf("create comment: %w (restore temp images: %v)", err, rerr)
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment, its direct replies, and their likes and images.
// Files are deleted from the store before rows, same as article deletion.
// Returns ErrCommentNotFound or ErrNotCommentAuthor.
func (s *Service) Delete(ctx context.Context, id, actorID int64) (*repository.CommentCascade, error) {
	if id <= 0 {
		return nil, ErrInvalidCommentID
	}

	c, err := s.Comments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	if c.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	paths, err := s.Comments.CollectImagePaths(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("collect image paths: %w", err)
	}
	for _, p := range paths {
		if err := s.Images.Delete(ctx, p); err != nil {
			return nil, fmt.Errorf("delete image %s: %w", p, err)
		}
	}

	cascade, err := s.Comments.DeleteCascade(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete cascade: %w", err)
	}
	return cascade, nil
}

// checkParent verifies the parent exists, belongs to the article, and is not
// itself a reply.
func (s *Service) checkParent(ctx context.Context, articleID, parentID int64) error {
	parent, err := s.Comments.Get(ctx, parentID)
	if err != nil {
		return fmt.Errorf("get parent: %w", err)
	}
	if parent == nil || parent.ArticleID != articleID {
		return ErrParentNotFound
	}
	if parent.IsReply() {
		return ErrNestedReply
	}
	return nil
}

func (s *Service) claimImages(ctx context.Context, userID int64, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	claimed, err := s.Temp.Claim(ctx, userID, requested)
	if err != nil {
		return nil, fmt.Errorf("claim images: %w", err)
	}
	claimedSet := make(map[string]struct{}, len(claimed))
	for _, p := range claimed {
		claimedSet[p] = struct{}{}
	}
	out := make([]string, 0, len(claimed))
	for _, p := range requested {
		if _, ok := claimedSet[p]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// restoreTempImages re-registers claimed uploads after a failed write so the
// files are reachable again, either for a retry or for the cleanup worker.
func (s *Service) restoreTempImages(ctx context.Context, userID int64, paths []string) error {
	for _, p := range paths {
		img := &entity.TempImage{UserID: userID, ImagePath: p, CreatedAt: time.Now()}
		if err := s.Temp.Create(ctx, img); err != nil {
			return err
		}
	}
	return nil
}
