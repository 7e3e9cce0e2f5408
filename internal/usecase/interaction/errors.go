// Package interaction provides the like and unlike use cases for articles
// and comments.
package interaction

import "errors"

// Sentinel errors for interaction use case operations.
var (
	// ErrInvalidTargetType indicates an unrecognized like target. Valid
	// values are article and comment.
	ErrInvalidTargetType = errors.New("invalid target type")

	// ErrTargetNotFound indicates the liked article or comment does not exist.
	ErrTargetNotFound = errors.New("target not found")
)
