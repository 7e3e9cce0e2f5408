package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents cursor pagination parameters from an HTTP request.
// AfterID is the id of the last item of the previous page; nil means start
// from the beginning of the order. AfterLikeCount is the secondary ranking
// key for the "top" feed and is only meaningful together with AfterID.
type Params struct {
	Limit          int
	AfterID        *int64
	AfterLikeCount *int64
}

// ParseQueryParams parses cursor parameters from the request query string.
//
// Query parameters:
//   - limit: Items per page (must be between 1 and config.MaxLimit)
//   - continueAfterId: Cursor position (must be a positive integer)
//   - continueAfterLikeCount: Secondary cursor key for ranked feeds (>= 0)
//
// Missing parameters fall back to config defaults / no cursor.
// Returns an error if parameters are present but invalid.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Limit: config.DefaultLimit}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	if afterStr := r.URL.Query().Get("continueAfterId"); afterStr != "" {
		after, err := strconv.ParseInt(afterStr, 10, 64)
		if err != nil || after <= 0 {
			return params, fmt.Errorf("invalid query parameter: continueAfterId must be a positive integer")
		}
		params.AfterID = &after
	}

	if likesStr := r.URL.Query().Get("continueAfterLikeCount"); likesStr != "" {
		likes, err := strconv.ParseInt(likesStr, 10, 64)
		if err != nil || likes < 0 {
			return params, fmt.Errorf("invalid query parameter: continueAfterLikeCount must be a non-negative integer")
		}
		params.AfterLikeCount = &likes
	}

	if err := params.Validate(config); err != nil {
		return params, fmt.Errorf("invalid query parameter: %w", err)
	}
	return params, nil
}

// Validate validates cursor parameters against the configuration.
func (p Params) Validate(config Config) error {
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	if p.AfterID != nil && *p.AfterID <= 0 {
		return fmt.Errorf("continueAfterId must be a positive integer")
	}
	if p.AfterLikeCount != nil && p.AfterID == nil {
		return fmt.Errorf("continueAfterLikeCount requires continueAfterId")
	}
	return nil
}
