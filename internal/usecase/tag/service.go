// Package tag implements the tag directory use case.
package tag

import (
	"context"
	"fmt"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// Service provides tag directory reads.
type Service struct {
	Tags repository.TagRepository
}

// ListInput represents the input parameters for one tag directory page.
// AfterName is the cursor: the last tag name of the previous page.
type ListInput struct {
	AfterName *string
	Limit     int
}

// ListResult is one page of tags plus the end-of-page marker.
type ListResult struct {
	Tags        []*entity.Tag
	LastReached bool
}

// List retrieves one tag directory page ordered by name.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	after := in.AfterName
	if after != nil {
		normalized := entity.NormalizeTag(*after)
		after = &normalized
	}
	rows, err := s.Tags.ListPage(ctx, after, pagination.FetchSize(in.Limit))
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	page, last := pagination.Trim(rows, in.Limit)
	pagination.RecordPage("tags", last)
	return &ListResult{Tags: page, LastReached: last}, nil
}
