package repository

import (
	"context"
	"errors"

	"devflow/internal/domain/entity"
)

// Uniqueness conflicts surfaced by UserRepository.Create. The database's
// unique constraints are the source of truth; these sentinels name which
// constraint fired.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

type UserRepository interface {
	// Create inserts the user and sets user.ID. Returns ErrDuplicateUsername
	// or ErrDuplicateEmail when the corresponding unique constraint fires.
	Create(ctx context.Context, user *entity.User) error
	// Get returns (nil, nil) if the user does not exist; likewise for the
	// ByUsername and ByEmail variants.
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
