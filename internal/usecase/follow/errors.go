// Package follow provides the user-follow and tag-follow use cases.
package follow

import "errors"

// Sentinel errors for follow use case operations.
var (
	// ErrUserNotFound indicates the followed user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTagNotFound indicates the followed tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrSelfFollow indicates an attempt to follow oneself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
