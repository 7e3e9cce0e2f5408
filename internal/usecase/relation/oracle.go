// Package relation answers "does the viewer already relate to this row"
// questions for pages of feed results. Each page costs one batched query per
// relation type, run concurrently, instead of one query per row.
package relation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// ArticleRelations holds the viewer's relation sets for one article page.
// Liked and Saved are keyed by article ID, FollowingAuthor by author ID.
// All maps are nil for an anonymous viewer; handlers omit the flags entirely
// rather than render false.
type ArticleRelations struct {
	Liked           map[int64]bool
	Saved           map[int64]bool
	FollowingAuthor map[int64]bool
}

// CommentRelations holds the viewer's relation sets for one comment page.
type CommentRelations struct {
	Liked           map[int64]bool
	FollowingAuthor map[int64]bool
}

// Oracle batches relation lookups against the repositories.
type Oracle struct {
	Likes   repository.LikeRepository
	Follows repository.FollowRepository
	Saves   repository.SavedArticleRepository
	Tags    repository.TagRepository
}

// ForArticles resolves the viewer's like, save, and author-follow sets for a
// page of articles. A nil viewerID short-circuits to empty relations.
func (o *Oracle) ForArticles(ctx context.Context, viewerID *int64, articles []repository.ArticleWithAuthor) (*ArticleRelations, error) {
	if viewerID == nil || len(articles) == 0 {
		return &ArticleRelations{}, nil
	}

	articleIDs := make([]int64, 0, len(articles))
	authorIDs := make([]int64, 0, len(articles))
	seenAuthors := make(map[int64]struct{}, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.Article.ID)
		if _, dup := seenAuthors[a.Article.AuthorID]; !dup {
			seenAuthors[a.Article.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, a.Article.AuthorID)
		}
	}

	rel := &ArticleRelations{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := o.Likes.LikedSet(gctx, *viewerID, articleIDs, entity.TargetArticle)
		if err != nil {
			return fmt.Errorf("liked set: %w", err)
		}
		rel.Liked = set
		return nil
	})
	g.Go(func() error {
		set, err := o.Saves.SavedSet(gctx, *viewerID, articleIDs)
		if err != nil {
			return fmt.Errorf("saved set: %w", err)
		}
		rel.Saved = set
		return nil
	})
	g.Go(func() error {
		set, err := o.Follows.FollowingSet(gctx, *viewerID, authorIDs)
		if err != nil {
			return fmt.Errorf("following set: %w", err)
		}
		rel.FollowingAuthor = set
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

// ForComments resolves the viewer's like and author-follow sets for a page
// of comments.
func (o *Oracle) ForComments(ctx context.Context, viewerID *int64, comments []repository.CommentWithAuthor) (*CommentRelations, error) {
	if viewerID == nil || len(comments) == 0 {
		return &CommentRelations{}, nil
	}

	commentIDs := make([]int64, 0, len(comments))
	authorIDs := make([]int64, 0, len(comments))
	seenAuthors := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.Comment.ID)
		if _, dup := seenAuthors[c.Comment.AuthorID]; !dup {
			seenAuthors[c.Comment.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, c.Comment.AuthorID)
		}
	}

	rel := &CommentRelations{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := o.Likes.LikedSet(gctx, *viewerID, commentIDs, entity.TargetComment)
		if err != nil {
			return fmt.Errorf("liked set: %w", err)
		}
		rel.Liked = set
		return nil
	})
	g.Go(func() error {
		set, err := o.Follows.FollowingSet(gctx, *viewerID, authorIDs)
		if err != nil {
			return fmt.Errorf("following set: %w", err)
		}
		rel.FollowingAuthor = set
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

// ForTags resolves which of the page's tags the viewer follows.
func (o *Oracle) ForTags(ctx context.Context, viewerID *int64, tags []*entity.Tag) (map[string]bool, error) {
	if viewerID == nil || len(tags) == 0 {
		return nil, nil
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	set, err := o.Tags.FollowingSet(ctx, *viewerID, names)
	if err != nil {
		return nil, fmt.Errorf("tag following set: %w", err)
	}
	return set, nil
}
