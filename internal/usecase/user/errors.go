// Package user provides account use cases: registration, credential checks,
// and public profiles.
package user

import "errors"

// Sentinel errors for user use case operations.
var (
	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login. The same error covers
	// an unknown account and a wrong password so responses do not reveal
	// which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
)
