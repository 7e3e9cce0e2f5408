package article

import (
	"context"
	"fmt"
	"time"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/infra/storage"
	"devflow/internal/repository"
)

// Service provides article management use cases. It handles business logic
// for feed reads, publication, and the deletion cascade, delegating
// persistence to the repositories and file handling to the image store.
type Service struct {
	Repo   repository.ArticleRepository
	Temp   repository.TempImageRepository
	Images storage.ImageStore
}

// FeedInput carries the filters and cursor for one chronological feed page.
type FeedInput struct {
	AuthorID *int64
	Tag      *string
	Followed repository.FollowedTarget
	ViewerID *int64
	Page     pagination.Params
}

// FeedResult is one page of articles plus the end-of-feed marker.
type FeedResult struct {
	Articles    []repository.ArticleWithAuthor
	LastReached bool
}

// CreateInput represents the input parameters for publishing a new article.
// Images are temp upload paths; only paths the author actually uploaded are
// attached.
type CreateInput struct {
	AuthorID int64
	Title    string
	Summary  string
	Body     string
	Tags     []string
	Images   []string
}

// UpdateInput represents the input parameters for editing an article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID      int64
	ActorID int64
	Title   *string
	Summary *string
	Body    *string
	Tags    *[]string
	Images  *[]string
}

// Feed retrieves one chronological feed page.
// Returns ErrFollowedFilterRequiresAuth when a followedTarget filter is used
// anonymously, or a ValidationError for an unknown target.
func (s *Service) Feed(ctx context.Context, in FeedInput) (*FeedResult, error) {
	if !in.Followed.Valid() {
		return nil, &entity.ValidationError{Field: "followedTarget", Message: "must be one of users, tags, all"}
	}
	if in.Followed != repository.FollowedNone && in.ViewerID == nil {
		return nil, ErrFollowedFilterRequiresAuth
	}

	filter := repository.FeedFilter{
		AuthorID: in.AuthorID,
		Followed: in.Followed,
		ViewerID: in.ViewerID,
	}
	if in.Tag != nil {
		normalized := entity.NormalizeTag(*in.Tag)
		if normalized == "" {
			return nil, &entity.ValidationError{Field: "tag", Message: "is empty"}
		}
		filter.Tag = &normalized
	}

	rows, err := s.Repo.ListFeed(ctx, filter, pagination.FromParams(in.Page), pagination.FetchSize(in.Page.Limit))
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	items, last := pagination.Trim(rows, in.Page.Limit)
	pagination.RecordPage("chronological", last)
	return &FeedResult{Articles: items, LastReached: last}, nil
}

// TopFeed retrieves one ranked feed page for the given time span.
// Returns ErrInvalidTimeSpan for an unknown span. The ranked cursor needs
// both continueAfterId and continueAfterLikeCount; a bare id cursor is
// rejected because the compound keyset cannot be evaluated without the
// like count.
func (s *Service) TopFeed(ctx context.Context, span string, page pagination.Params) (*FeedResult, error) {
	ts := entity.TimeSpan(span)
	if !ts.Valid() {
		return nil, ErrInvalidTimeSpan
	}
	if page.AfterID != nil && page.AfterLikeCount == nil {
		return nil, &entity.ValidationError{Field: "continueAfterLikeCount", Message: "is required with continueAfterId on ranked feeds"}
	}

	windowStart := ts.WindowStart(time.Now())
	rows, err := s.Repo.ListTop(ctx, windowStart, pagination.FromParams(page), pagination.FetchSize(page.Limit))
	if err != nil {
		return nil, fmt.Errorf("list top: %w", err)
	}
	items, last := pagination.Trim(rows, page.Limit)
	pagination.RecordPage("ranked", last)
	return &FeedResult{Articles: items, LastReached: last}, nil
}

// GetBySlug retrieves a single article by its slug.
// Returns ErrArticleNotFound if no article has the slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*repository.ArticleWithAuthor, error) {
	if slug == "" {
		return nil, ErrArticleNotFound
	}
	item, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get by slug: %w", err)
	}
	if item == nil {
		return nil, ErrArticleNotFound
	}
	return item, nil
}

// Create publishes a new article. Tags are normalized and deduplicated, the
// slug is derived from the title, and the listed temp images are claimed so
// only the author's own uploads attach.
// Returns ValidationErrors when any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	tags := entity.NormalizeTags(in.Tags)
	if errs := entity.ValidateArticleInput(in.Title, in.Summary, in.Body, tags); len(errs) > 0 {
		return nil, errs
	}

	images, err := s.claimImages(ctx, in.AuthorID, in.Images)
	if err != nil {
		return nil, err
	}

	art := &entity.Article{
		AuthorID:  in.AuthorID,
		Title:     in.Title,
		Slug:      makeSlug(in.Title),
		Summary:   in.Summary,
		Body:      in.Body,
		Tags:      tags,
		Images:    images,
		CreatedAt: time.Now(),
	}
	art.UpdatedAt = art.CreatedAt

	if err := s.Repo.Create(ctx, art); err != nil {
		// The claimed temp rows are already gone; put them back so the
		// uploaded files stay visible to the cleanup worker.
		if rerr := s.restoreTempImages(ctx, in.AuthorID, images); rerr != nil {
			return nil, fmt.Errorf("create article: %w (restore temp images: %v)", err, rerr)
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update edits an existing article. Only non-nil fields change. The tag diff
// is applied so tag article counts stay consistent.
// Returns ErrArticleNotFound, ErrNotArticleAuthor, or ValidationErrors.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Article, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if art.AuthorID != in.ActorID {
		return nil, ErrNotArticleAuthor
	}

	if in.Title != nil {
		art.Title = *in.Title
	}
	if in.Summary != nil {
		art.Summary = *in.Summary
	}
	if in.Body != nil {
		art.Body = *in.Body
	}

	var addedTags, removedTags []string
	if in.Tags != nil {
		newTags := entity.NormalizeTags(*in.Tags)
		addedTags, removedTags = diffTags(art.Tags, newTags)
		art.Tags = newTags
	}

	if errs := entity.ValidateArticleInput(art.Title, art.Summary, art.Body, art.Tags); len(errs) > 0 {
		return nil, errs
	}

	var claimedImages, removedImages []string
	if in.Images != nil {
		images, claimed, err := s.mergeImages(ctx, art.AuthorID, art.Images, *in.Images)
		if err != nil {
			return nil, err
		}
		removedImages = pathsNotIn(art.Images, images)
		claimedImages = claimed
		art.Images = images
	}

	// Dropped image files go first, same ordering as Delete: a failure
	// after this point orphans rows, never files.
	for _, p := range removedImages {
		if err := s.Images.Delete(ctx, p); err != nil {
			return nil, fmt.Errorf("delete image %s: %w", p, err)
		}
	}

	art.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, art, addedTags, removedTags); err != nil {
		if rerr := s.restoreTempImages(ctx, art.AuthorID, claimedImages); rerr != nil {
			return nil, fmt.Errorf("update article: %w (restore temp images: %v)", err, rerr)
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return art, nil
}

// Delete removes an article and everything hanging off it. Image files are
// deleted from the store before any rows so a crash mid-sequence orphans
// rows, never files.
// Returns ErrArticleNotFound or ErrNotArticleAuthor.
func (s *Service) Delete(ctx context.Context, id, actorID int64) (*repository.ArticleCascade, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if art.AuthorID != actorID {
		return nil, ErrNotArticleAuthor
	}

	paths, err := s.Repo.CollectImagePaths(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("collect image paths: %w", err)
	}
	for _, p := range paths {
		if err := s.Images.Delete(ctx, p); err != nil {
			return nil, fmt.Errorf("delete image %s: %w", p, err)
		}
	}

	cascade, err := s.Repo.DeleteCascade(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete cascade: %w", err)
	}
	return cascade, nil
}

// claimImages converts requested temp paths into attachable ones, preserving
// the caller's order. Paths the user never uploaded are silently dropped.
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

// mergeImages resolves an edit's image list: paths already on the article
// stay, new paths must be claimable temp uploads. The claimed paths are
// returned separately so a failed update can re-register them.
func (s *Service) mergeImages(ctx context.Context, userID int64, current, requested []string) ([]string, []string, error) {
	currentSet := make(map[string]struct{}, len(current))
	for _, p := range current {
		currentSet[p] = struct{}{}
	}
	var fresh []string
	for _, p := range requested {
		if _, ok := currentSet[p]; !ok {
			fresh = append(fresh, p)
		}
	}
	claimed, err := s.claimImages(ctx, userID, fresh)
	if err != nil {
		return nil, nil, err
	}
	claimedSet := make(map[string]struct{}, len(claimed))
	for _, p := range claimed {
		claimedSet[p] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	for _, p := range requested {
		_, kept := currentSet[p]
		_, claimedNow := claimedSet[p]
		if kept || claimedNow {
			out = append(out, p)
		}
	}
	return out, claimed, nil
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

// pathsNotIn returns the members of old missing from updated.
func pathsNotIn(old, updated []string) []string {
	set := make(map[string]struct{}, len(updated))
	for _, p := range updated {
		set[p] = struct{}{}
	}
	var out []string
	for _, p := range old {
		if _, ok := set[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// diffTags splits the old/new tag sets into additions and removals.
func diffTags(oldTags, newTags []string) (added, removed []string) {
	oldSet := make(map[string]struct{}, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newTags))
	for _, t := range newTags {
		newSet[t] = struct{}{}
	}
	for _, t := range newTags {
		if _, ok := oldSet[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range oldTags {
		if _, ok := newSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	return added, removed
}
