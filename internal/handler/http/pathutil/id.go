// Package pathutil provides helpers for extracting typed values from URL
// path segments registered with Go 1.22 method patterns.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ID parses the named path value as a positive int64.
//
// Example:
//
//	mux.Handle("GET /articles/{articleId}/comments", h)
//	id, err := pathutil.ID(r, "articleId")
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
